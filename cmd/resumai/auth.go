package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thanush/resumai/internal/api"
	"github.com/thanush/resumai/internal/config"
	"github.com/thanush/resumai/internal/gateway"
	"github.com/thanush/resumai/internal/localstore"
)

var registerCommand = &cobra.Command{
	Use:   "register <email> <password>",
	Short: "Create an account",
	Args:  cobra.ExactArgs(2),
	RunE:  runRegisterCmd,
}

var loginCommand = &cobra.Command{
	Use:   "login <email> <password>",
	Short: "Sign in and store the session",
	Args:  cobra.ExactArgs(2),
	RunE:  runLoginCmd,
}

var logoutCommand = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session",
	RunE:  runLogoutCmd,
}

var registerName string

func init() {
	registerCommand.Flags().StringVarP(&registerName, "name", "n", "", "Display name (defaults to the email's local part)")
	rootCmd.AddCommand(registerCommand, loginCommand, logoutCommand)
}

// newGateway wires the persistence gateway from environment config.
func newGateway() (*gateway.Gateway, error) {
	cfg := config.Load()
	local, err := localstore.New(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}
	return gateway.New(api.NewClient(cfg.APIBaseURL), local), nil
}

func runRegisterCmd(cmd *cobra.Command, args []string) error {
	gw, err := newGateway()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), api.DefaultTimeout)
	defer cancel()

	user, err := gw.Register(ctx, args[0], args[1], registerName)
	if err != nil {
		return err
	}

	fmt.Printf("Registered as %s (%s)\n", user.Email, user.ID)
	if !gw.RemoteAvailable() {
		fmt.Println("Note: backend unreachable, account created in local storage only.")
	}
	return nil
}

func runLoginCmd(cmd *cobra.Command, args []string) error {
	gw, err := newGateway()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), api.DefaultTimeout)
	defer cancel()

	user, err := gw.Login(ctx, args[0], args[1])
	if err != nil {
		return err
	}

	fmt.Printf("Signed in as %s\n", user.Email)
	if !gw.RemoteAvailable() {
		fmt.Println("Note: backend unreachable, signed in against local storage.")
	}
	return nil
}

func runLogoutCmd(cmd *cobra.Command, _ []string) error {
	gw, err := newGateway()
	if err != nil {
		return err
	}
	if err := gw.Logout(); err != nil {
		return err
	}
	fmt.Println("Signed out.")
	return nil
}
