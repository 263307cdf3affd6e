package main

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

var loginCommand = &cli.Command{
	Name:  "login",
	Usage: "Log in to a TestHub server",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    flagServer,
			Aliases: []string{"s"},
			Usage: "Log into the API server at the specified address; " +
				"defaults to $TESTHUB_API_ADDRESS",
		},
		&cli.StringFlag{
			Name:     flagUsername,
			Aliases:  []string{"u"},
			Usage:    "Log in as the specified user (required)",
			Required: true,
		},
		&cli.StringFlag{
			Name:    flagPassword,
			Aliases: []string{"p"},
			Usage:   "Specify the password for non-interactive login",
		},
	},
	Action: login,
}

var logoutCommand = &cli.Command{
	Name:   "logout",
	Usage:  "Log out and discard the stored session",
	Action: logout,
}

var registerCommand = &cli.Command{
	Name:  "register",
	Usage: "Create a new TestHub account",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    flagServer,
			Aliases: []string{"s"},
			Usage: "Register with the API server at the specified address; " +
				"defaults to $TESTHUB_API_ADDRESS",
		},
		&cli.StringFlag{
			Name:     flagUsername,
			Aliases:  []string{"u"},
			Usage:    "Register the specified username (required)",
			Required: true,
		},
		&cli.StringFlag{
			Name:     flagEmail,
			Aliases:  []string{"e"},
			Usage:    "Register with the specified email address (required)",
			Required: true,
		},
		&cli.StringFlag{
			Name:    flagPassword,
			Aliases: []string{"p"},
			Usage:   "Specify the password for non-interactive registration",
		},
	},
	Action: register,
}

var whoamiCommand = &cli.Command{
	Name:   "whoami",
	Usage:  "Show the currently logged-in user",
	Action: whoami,
}

func login(c *cli.Context) error {
	username := c.String(flagUsername)
	password := c.String(flagPassword)

	if password == "" {
		prompt := &survey.Password{
			Message: fmt.Sprintf("Password for %s", username),
		}
		if err := survey.AskOne(prompt, &password); err != nil {
			return err
		}
	}

	sess, err := getSession(c)
	if err != nil {
		return err
	}
	sess.Initialize(c.Context)

	if err := sess.Login(c.Context, username, password); err != nil {
		return err
	}

	user, _ := sess.CurrentUser()
	fmt.Printf("You are logged in as %s.\n", user.Username)
	return nil
}

func logout(c *cli.Context) error {
	sess, err := getSession(c)
	if err != nil {
		return err
	}
	return sess.Logout()
}

func register(c *cli.Context) error {
	username := c.String(flagUsername)
	email := c.String(flagEmail)
	password := c.String(flagPassword)

	if password == "" {
		for {
			prompt := &survey.Password{
				Message: fmt.Sprintf("Password for %s", username),
			}
			if err := survey.AskOne(prompt, &password); err != nil {
				return err
			}
			var confirmation string
			prompt = &survey.Password{
				Message: "Confirm password",
			}
			if err := survey.AskOne(prompt, &confirmation); err != nil {
				return err
			}
			if password == confirmation {
				break
			}
			password = ""
			fmt.Println("Passwords do not match. Please try again.")
		}
	}

	sess, err := getSession(c)
	if err != nil {
		return err
	}
	sess.Initialize(c.Context)

	user, err := sess.Register(c.Context, username, email, password)
	if err != nil {
		return err
	}

	fmt.Printf(
		"Registered user %q. Use `testhub login` to sign in.\n",
		user.Username,
	)
	return nil
}

func whoami(c *cli.Context) error {
	sess, err := getSession(c)
	if err != nil {
		return err
	}
	sess.Initialize(c.Context)

	user, ok := sess.CurrentUser()
	if !ok {
		return errors.New(
			"you are not logged in; please use `testhub login` to continue",
		)
	}
	fmt.Printf(
		"You are logged in as %s (%s); role: %s\n",
		user.Username,
		user.Email,
		user.Role,
	)
	return nil
}
