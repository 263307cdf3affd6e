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
)

var executionCommand = &cli.Command{
	Name:  "execution",
	Usage: "Manage test executions",
	Subcommands: []*cli.Command{
		{
			Name:  "get",
			Usage: "Retrieve a test execution",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:     flagID,
					Aliases:  []string{"i"},
					Usage:    "Retrieve the specified execution (required)",
					Required: true,
				},
				cliFlagOutput,
			},
			Action: executionGet,
		},
		{
			Name:  "list",
			Usage: "Retrieve many test executions",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:     flagProject,
					Aliases:  []string{"p"},
					Usage:    "List executions in the specified project (required)",
					Required: true,
				},
				cliFlagOutput,
			},
			Action: executionList,
		},
		{
			Name:  "start",
			Usage: "Start a new test execution",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:     flagProject,
					Aliases:  []string{"p"},
					Usage:    "Execute tests from the specified project (required)",
					Required: true,
				},
				&cli.IntFlag{
					Name:     flagEnv,
					Aliases:  []string{"e"},
					Usage:    "Execute against the specified environment (required)",
					Required: true,
				},
				&cli.IntSliceFlag{
					Name:    flagCase,
					Aliases: []string{"c"},
					Usage: "Execute only the specified test case; may be specified " +
						"multiple times; omit to execute all of the project's test " +
						"cases",
				},
			},
			Action: executionStart,
		},
		{
			Name:  "stop",
			Usage: "Stop a running test execution",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:     flagID,
					Aliases:  []string{"i"},
					Usage:    "Stop the specified execution (required)",
					Required: true,
				},
			},
			Action: executionStop,
		},
	},
}

func executionStart(c *cli.Context) error {
	projectID := c.Int(flagProject)

	client, err := getClient(c)
	if err != nil {
		return err
	}

	execution, err := client.Executions().Start(
		c.Context,
		projectID,
		testhub.ExecutionSpec{
			EnvironmentID: c.Int(flagEnv),
			TestCaseIDs:   c.IntSlice(flagCase),
		},
	)
	if err != nil {
		return err
	}

	fmt.Printf(
		"Started execution %d in project %d; status: %s\n",
		execution.ID,
		execution.ProjectID,
		execution.Status,
	)
	return nil
}

func executionList(c *cli.Context) error {
	projectID := c.Int(flagProject)
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
		executions, err := client.Executions().List(c.Context, projectID, opts)
		if err != nil {
			return err
		}

		if len(executions) == 0 && opts.Skip == 0 {
			fmt.Println("No executions found.")
			return nil
		}

		switch strings.ToLower(output) {
		case "table":
			table := uitable.New()
			table.AddRow("ID", "ENVIRONMENT", "STATUS", "STARTED", "ENDED")
			for _, execution := range executions {
				table.AddRow(
					execution.ID,
					execution.EnvironmentID,
					execution.Status,
					timeCell(execution.StartTime),
					timeCell(execution.EndTime),
				)
			}
			fmt.Println(table)

		case "yaml":
			yamlBytes, err := yaml.Marshal(executions)
			if err != nil {
				return errors.Wrap(
					err,
					"error formatting output from list executions operation",
				)
			}
			fmt.Println(string(yamlBytes))

		case "json":
			prettyJSON, err := json.MarshalIndent(executions, "", "  ")
			if err != nil {
				return errors.Wrap(
					err,
					"error formatting output from list executions operation",
				)
			}
			fmt.Println(string(prettyJSON))
		}

		if len(executions) < pageSize {
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

		opts.Skip += len(executions)
	}

	return nil
}

func executionGet(c *cli.Context) error {
	id := c.Int(flagID)
	output := c.String(flagOutput)
	if err := validateOutputFormat(output); err != nil {
		return err
	}

	client, err := getClient(c)
	if err != nil {
		return err
	}

	execution, err := client.Executions().Get(c.Context, id)
	if err != nil {
		return err
	}

	switch strings.ToLower(output) {
	case "table":
		table := uitable.New()
		table.AddRow(
			"ID",
			"PROJECT",
			"ENVIRONMENT",
			"STATUS",
			"STARTED",
			"ENDED",
			"REPORT",
		)
		table.AddRow(
			execution.ID,
			execution.ProjectID,
			execution.EnvironmentID,
			execution.Status,
			timeCell(execution.StartTime),
			timeCell(execution.EndTime),
			execution.ReportPath,
		)
		fmt.Println(table)

	case "yaml":
		yamlBytes, err := yaml.Marshal(execution)
		if err != nil {
			return errors.Wrap(
				err,
				"error formatting output from get execution operation",
			)
		}
		fmt.Println(string(yamlBytes))

	case "json":
		prettyJSON, err := json.MarshalIndent(execution, "", "  ")
		if err != nil {
			return errors.Wrap(
				err,
				"error formatting output from get execution operation",
			)
		}
		fmt.Println(string(prettyJSON))
	}

	return nil
}

func executionStop(c *cli.Context) error {
	id := c.Int(flagID)

	client, err := getClient(c)
	if err != nil {
		return err
	}

	if err := client.Executions().Stop(c.Context, id); err != nil {
		return err
	}

	fmt.Printf("Requested stop of execution %d.\n", id)
	return nil
}
