package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/ghodss/yaml"
	"github.com/gosuri/uitable"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"golang.org/x/crypto/ssh/terminal"

	"github.com/kmaitland/testhub"
	"github.com/kmaitland/testhub/internal/schema"
)

// One page of results per round trip; the server caps page size at 100.
const pageSize = 100

var projectCommand = &cli.Command{
	Name:  "project",
	Usage: "Manage projects",
	Subcommands: []*cli.Command{
		{
			Name:  "create",
			Usage: "Create a new project",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    flagFile,
					Aliases: []string{"f"},
					Usage: "A YAML or JSON file that describes the project " +
						"(required)",
					Required:  true,
					TakesFile: true,
				},
			},
			Action: projectCreate,
		},
		{
			Name:  "delete",
			Usage: "Delete a single project",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:     flagID,
					Aliases:  []string{"i"},
					Usage:    "Delete the specified project (required)",
					Required: true,
				},
				&cli.BoolFlag{
					Name:    flagYes,
					Aliases: []string{"y"},
					Usage:   "Non-interactively confirm deletion",
				},
			},
			Action: projectDelete,
		},
		{
			Name:  "get",
			Usage: "Retrieve a project",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:     flagID,
					Aliases:  []string{"i"},
					Usage:    "Retrieve the specified project (required)",
					Required: true,
				},
				cliFlagOutput,
			},
			Action: projectGet,
		},
		{
			Name:  "list",
			Usage: "Retrieve many projects",
			Flags: []cli.Flag{
				cliFlagOutput,
			},
			Action: projectList,
		},
		{
			Name:  "update",
			Usage: "Update a project",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:     flagID,
					Aliases:  []string{"i"},
					Usage:    "Update the specified project (required)",
					Required: true,
				},
				&cli.StringFlag{
					Name:    flagFile,
					Aliases: []string{"f"},
					Usage: "A YAML or JSON file that describes the project " +
						"(required)",
					Required:  true,
					TakesFile: true,
				},
			},
			Action: projectUpdate,
		},
	},
}

func projectCreate(c *cli.Context) error {
	projectBytes, err := readDefinitionBytes(c.String(flagFile))
	if err != nil {
		return err
	}
	if err = schema.ValidateProjectBytes(projectBytes); err != nil {
		return err
	}
	spec := testhub.ProjectSpec{}
	if err = json.Unmarshal(projectBytes, &spec); err != nil {
		return errors.Wrap(err, "error unmarshaling project definition")
	}

	client, err := getClient(c)
	if err != nil {
		return err
	}

	project, err := client.Projects().Create(c.Context, spec)
	if err != nil {
		return err
	}

	fmt.Printf("Created project %q (id %d).\n", project.Name, project.ID)
	return nil
}

func projectList(c *cli.Context) error {
	output := c.String(flagOutput)
	if err := validateOutputFormat(output); err != nil {
		return err
	}

	client, err := getClient(c)
	if err != nil {
		return err
	}

	opts := testhub.ListOptions{Limit: pageSize}

	for {
		projects, err := client.Projects().List(c.Context, opts)
		if err != nil {
			return err
		}

		if len(projects) == 0 && opts.Skip == 0 {
			fmt.Println("No projects found.")
			return nil
		}

		switch strings.ToLower(output) {
		case "table":
			table := uitable.New()
			table.AddRow("ID", "NAME", "DESCRIPTION", "REPOSITORY", "CREATED")
			for _, project := range projects {
				table.AddRow(
					project.ID,
					project.Name,
					project.Description,
					project.RepositoryURL,
					project.CreatedAt,
				)
			}
			fmt.Println(table)

		case "yaml":
			yamlBytes, err := yaml.Marshal(projects)
			if err != nil {
				return errors.Wrap(
					err,
					"error formatting output from list projects operation",
				)
			}
			fmt.Println(string(yamlBytes))

		case "json":
			prettyJSON, err := json.MarshalIndent(projects, "", "  ")
			if err != nil {
				return errors.Wrap(
					err,
					"error formatting output from list projects operation",
				)
			}
			fmt.Println(string(prettyJSON))
		}

		if len(projects) < pageSize {
			break
		}

		// Exit after one page of output if this isn't a terminal
		if !terminal.IsTerminal(int(os.Stdout.Fd())) {
			break
		}

		var shouldContinue bool
		fmt.Println()
		if err := survey.AskOne(
			&survey.Confirm{
				Message: "More results may remain. Fetch more?",
			},
			&shouldContinue,
		); err != nil {
			return errors.Wrap(
				err,
				"error confirming if user wishes to continue",
			)
		}
		fmt.Println()
		if !shouldContinue {
			break
		}

		opts.Skip += len(projects)
	}

	return nil
}

func projectGet(c *cli.Context) error {
	id := c.Int(flagID)
	output := c.String(flagOutput)
	if err := validateOutputFormat(output); err != nil {
		return err
	}

	client, err := getClient(c)
	if err != nil {
		return err
	}

	project, err := client.Projects().Get(c.Context, id)
	if err != nil {
		return err
	}

	switch strings.ToLower(output) {
	case "table":
		table := uitable.New()
		table.AddRow("ID", "NAME", "DESCRIPTION", "REPOSITORY", "CREATED")
		table.AddRow(
			project.ID,
			project.Name,
			project.Description,
			project.RepositoryURL,
			project.CreatedAt,
		)
		fmt.Println(table)

	case "yaml":
		yamlBytes, err := yaml.Marshal(project)
		if err != nil {
			return errors.Wrap(
				err,
				"error formatting output from get project operation",
			)
		}
		fmt.Println(string(yamlBytes))

	case "json":
		prettyJSON, err := json.MarshalIndent(project, "", "  ")
		if err != nil {
			return errors.Wrap(
				err,
				"error formatting output from get project operation",
			)
		}
		fmt.Println(string(prettyJSON))
	}

	return nil
}

func projectUpdate(c *cli.Context) error {
	id := c.Int(flagID)

	projectBytes, err := readDefinitionBytes(c.String(flagFile))
	if err != nil {
		return err
	}
	if err = schema.ValidateProjectBytes(projectBytes); err != nil {
		return err
	}
	spec := testhub.ProjectSpec{}
	if err = json.Unmarshal(projectBytes, &spec); err != nil {
		return errors.Wrap(err, "error unmarshaling project definition")
	}

	client, err := getClient(c)
	if err != nil {
		return err
	}

	project, err := client.Projects().Update(c.Context, id, spec)
	if err != nil {
		return err
	}

	fmt.Printf("Updated project %q (id %d).\n", project.Name, project.ID)
	return nil
}

func projectDelete(c *cli.Context) error {
	id := c.Int(flagID)

	if !c.Bool(flagYes) {
		var confirmed bool
		if err := survey.AskOne(
			&survey.Confirm{
				Message: fmt.Sprintf(
					"Delete project %d and all of its test cases and executions?",
					id,
				),
			},
			&confirmed,
		); err != nil {
			return errors.Wrap(err, "error confirming deletion")
		}
		if !confirmed {
			return nil
		}
	}

	client, err := getClient(c)
	if err != nil {
		return err
	}

	if err := client.Projects().Delete(c.Context, id); err != nil {
		return err
	}

	fmt.Printf("Deleted project %d.\n", id)
	return nil
}
