package main

import "github.com/urfave/cli/v2"

const (
	flagCase     = "case"
	flagDebug    = "debug"
	flagEmail    = "email"
	flagEnv      = "env"
	flagFile     = "file"
	flagID       = "id"
	flagInsecure = "insecure"
	flagOutput   = "output"
	flagPassword = "password"
	flagProject  = "project"
	flagServer   = "server"
	flagType     = "type"
	flagUsername = "username"
	flagYes      = "yes"
)

var (
	cliFlagOutput = &cli.StringFlag{
		Name:    flagOutput,
		Aliases: []string{"o"},
		Usage: "Return output in the specified format; supported formats: " +
			"table, yaml, json",
		Value: "table",
	}
)
