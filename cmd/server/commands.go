package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/yukikurage/kanban-board-api/internal/database"
	"github.com/yukikurage/kanban-board-api/internal/repository"
	"github.com/yukikurage/kanban-board-api/internal/services"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := setup(); err != nil {
			return err
		}
		if err := database.Migrate(); err != nil {
			return err
		}
		log.Info().Msg("migrations applied")
		return nil
	},
}

var createUserFlags struct {
	username string
	email    string
	password string
	staff    bool
}

var createUserCmd = &cobra.Command{
	Use:   "createuser",
	Short: "Create a user and print its API token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := setup(); err != nil {
			return err
		}
		if err := database.Migrate(); err != nil {
			return err
		}

		users := services.NewUserService(repository.NewUserRepository(database.GetDB()))
		user, err := users.CreateUser(services.CreateUserInput{
			Username: createUserFlags.username,
			Email:    createUserFlags.email,
			Password: createUserFlags.password,
			IsStaff:  createUserFlags.staff,
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "created user %q (id %d)\ntoken: %s\n", user.Username, user.ID, user.APIToken)
		return nil
	},
}

func init() {
	flags := createUserCmd.Flags()
	flags.StringVar(&createUserFlags.username, "username", "", "login name")
	flags.StringVar(&createUserFlags.email, "email", "", "email address")
	flags.StringVar(&createUserFlags.password, "password", "", "password, at least 8 characters")
	flags.BoolVar(&createUserFlags.staff, "staff", false, "allow access to the admin console")
	_ = createUserCmd.MarkFlagRequired("username")
	_ = createUserCmd.MarkFlagRequired("password")
}
