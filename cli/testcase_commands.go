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

var testCaseCommand = &cli.Command{
	Name:  "testcase",
	Usage: "Manage test cases",
	Subcommands: []*cli.Command{
		{
			Name:  "create",
			Usage: "Create a new test case",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:     flagProject,
					Aliases:  []string{"p"},
					Usage:    "Create the test case in the specified project (required)",
					Required: true,
				},
				&cli.StringFlag{
					Name:    flagFile,
					Aliases: []string{"f"},
					Usage: "A YAML or JSON file that describes the test case " +
						"(required)",
					Required:  true,
					TakesFile: true,
				},
			},
			Action: testCaseCreate,
		},
		{
			Name:  "delete",
			Usage: "Delete a single test case",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:     flagID,
					Aliases:  []string{"i"},
					Usage:    "Delete the specified test case (required)",
					Required: true,
				},
				&cli.BoolFlag{
					Name:    flagYes,
					Aliases: []string{"y"},
					Usage:   "Non-interactively confirm deletion",
				},
			},
			Action: testCaseDelete,
		},
		{
			Name:  "get",
			Usage: "Retrieve a test case",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:     flagID,
					Aliases:  []string{"i"},
					Usage:    "Retrieve the specified test case (required)",
					Required: true,
				},
				cliFlagOutput,
			},
			Action: testCaseGet,
		},
		{
			Name:  "list",
			Usage: "Retrieve many test cases",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:     flagProject,
					Aliases:  []string{"p"},
					Usage:    "List test cases in the specified project (required)",
					Required: true,
				},
				&cli.StringFlag{
					Name:    flagType,
					Aliases: []string{"t"},
					Usage:   "List only test cases of the specified type (api or ui)",
				},
				cliFlagOutput,
			},
			Action: testCaseList,
		},
		{
			Name:  "update",
			Usage: "Update a test case",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:     flagID,
					Aliases:  []string{"i"},
					Usage:    "Update the specified test case (required)",
					Required: true,
				},
				&cli.StringFlag{
					Name:    flagFile,
					Aliases: []string{"f"},
					Usage: "A YAML or JSON file that describes the test case " +
						"(required)",
					Required:  true,
					TakesFile: true,
				},
			},
			Action: testCaseUpdate,
		},
	},
}

func readTestCaseSpec(filename string) (testhub.TestCaseSpec, error) {
	spec := testhub.TestCaseSpec{}
	testCaseBytes, err := readDefinitionBytes(filename)
	if err != nil {
		return spec, err
	}
	if err = schema.ValidateTestCaseBytes(testCaseBytes); err != nil {
		return spec, err
	}
	if err = json.Unmarshal(testCaseBytes, &spec); err != nil {
		return spec, errors.Wrap(err, "error unmarshaling test case definition")
	}
	return spec, nil
}

func testCaseCreate(c *cli.Context) error {
	projectID := c.Int(flagProject)

	spec, err := readTestCaseSpec(c.String(flagFile))
	if err != nil {
		return err
	}

	client, err := getClient(c)
	if err != nil {
		return err
	}

	testCase, err := client.TestCases().Create(c.Context, projectID, spec)
	if err != nil {
		return err
	}

	fmt.Printf("Created test case %q (id %d).\n", testCase.Name, testCase.ID)
	return nil
}

func testCaseList(c *cli.Context) error {
	projectID := c.Int(flagProject)
	output := c.String(flagOutput)
	if err := validateOutputFormat(output); err != nil {
		return err
	}

	client, err := getClient(c)
	if err != nil {
		return err
	}

	opts := testhub.TestCaseListOptions{
		ListOptions: testhub.ListOptions{Limit: pageSize},
		Type:        testhub.TestCaseType(c.String(flagType)),
	}

	for {
		testCases, err := client.TestCases().List(c.Context, projectID, opts)
		if err != nil {
			return err
		}

		if len(testCases) == 0 && opts.Skip == 0 {
			fmt.Println("No test cases found.")
			return nil
		}

		switch strings.ToLower(output) {
		case "table":
			table := uitable.New()
			table.AddRow("ID", "NAME", "TYPE", "DESCRIPTION", "CREATED")
			for _, testCase := range testCases {
				table.AddRow(
					testCase.ID,
					testCase.Name,
					testCase.Type,
					testCase.Description,
					testCase.CreatedAt,
				)
			}
			fmt.Println(table)

		case "yaml":
			yamlBytes, err := yaml.Marshal(testCases)
			if err != nil {
				return errors.Wrap(
					err,
					"error formatting output from list test cases operation",
				)
			}
			fmt.Println(string(yamlBytes))

		case "json":
			prettyJSON, err := json.MarshalIndent(testCases, "", "  ")
			if err != nil {
				return errors.Wrap(
					err,
					"error formatting output from list test cases operation",
				)
			}
			fmt.Println(string(prettyJSON))
		}

		if len(testCases) < pageSize {
			break
		}

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

		opts.Skip += len(testCases)
	}

	return nil
}

func testCaseGet(c *cli.Context) error {
	id := c.Int(flagID)
	output := c.String(flagOutput)
	if err := validateOutputFormat(output); err != nil {
		return err
	}

	client, err := getClient(c)
	if err != nil {
		return err
	}

	testCase, err := client.TestCases().Get(c.Context, id)
	if err != nil {
		return err
	}

	switch strings.ToLower(output) {
	case "table":
		table := uitable.New()
		table.AddRow("ID", "PROJECT", "NAME", "TYPE", "DESCRIPTION", "CREATED")
		table.AddRow(
			testCase.ID,
			testCase.ProjectID,
			testCase.Name,
			testCase.Type,
			testCase.Description,
			testCase.CreatedAt,
		)
		fmt.Println(table)

	case "yaml":
		yamlBytes, err := yaml.Marshal(testCase)
		if err != nil {
			return errors.Wrap(
				err,
				"error formatting output from get test case operation",
			)
		}
		fmt.Println(string(yamlBytes))

	case "json":
		prettyJSON, err := json.MarshalIndent(testCase, "", "  ")
		if err != nil {
			return errors.Wrap(
				err,
				"error formatting output from get test case operation",
			)
		}
		fmt.Println(string(prettyJSON))
	}

	return nil
}

func testCaseUpdate(c *cli.Context) error {
	id := c.Int(flagID)

	spec, err := readTestCaseSpec(c.String(flagFile))
	if err != nil {
		return err
	}

	client, err := getClient(c)
	if err != nil {
		return err
	}

	testCase, err := client.TestCases().Update(c.Context, id, spec)
	if err != nil {
		return err
	}

	fmt.Printf("Updated test case %q (id %d).\n", testCase.Name, testCase.ID)
	return nil
}

func testCaseDelete(c *cli.Context) error {
	id := c.Int(flagID)

	if !c.Bool(flagYes) {
		var confirmed bool
		if err := survey.AskOne(
			&survey.Confirm{
				Message: fmt.Sprintf("Delete test case %d?", id),
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

	if err := client.TestCases().Delete(c.Context, id); err != nil {
		return err
	}

	fmt.Printf("Deleted test case %d.\n", id)
	return nil
}
