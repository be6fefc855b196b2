package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/gokatarajesh/chaturn/internal/app"
	"github.com/gokatarajesh/chaturn/internal/config"
)

var (
	envFile  string
	userName string
)

// rootCmd runs the interactive conversation.
var rootCmd = &cobra.Command{
	Use:   "chaturn",
	Short: "Astronomy chatbot for the terminal",
	Long: `chaturn answers questions about the planets, lists and compares
celestial objects, tells space facts and runs astronomy quizzes.

Run without a subcommand to start a conversation. Type 'quit' to leave.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		instance, err := build(cmd)
		if err != nil {
			return err
		}
		return instance.Run(cmd.Context())
	},
}

var askCmd = &cobra.Command{
	Use:   "ask <message>",
	Short: "Answer one message and exit",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		instance, err := build(cmd)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), instance.Ask(strings.Join(args, " ")))
		return nil
	},
}

var classifyCmd = &cobra.Command{
	Use:   "classify <message>",
	Short: "Print the intent a message is classified as",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		instance, err := build(cmd)
		if err != nil {
			return err
		}
		c := instance.Classify(strings.Join(args, " "))
		fmt.Fprintf(cmd.OutOrStdout(), "intent=%s param1=%q param2=%q\n", c.Intent, c.Param1, c.Param2)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "configs/.env", "dotenv file loaded outside production")
	rootCmd.PersistentFlags().StringVar(&userName, "user", "", "name to greet (overrides USER_NAME)")

	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(classifyCmd)
}

func build(cmd *cobra.Command) (*app.Application, error) {
	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			log.Printf("Warning: could not load .env file: %v", err)
		}
	}

	cfg, err := config.Load(cmd.Context())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if userName != "" {
		cfg.UserName = userName
	}

	instance, err := app.New(cmd.Context(), cfg, app.Streams{
		In:  cmd.InOrStdin(),
		Out: cmd.OutOrStdout(),
		Err: cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, fmt.Errorf("build app: %w", err)
	}
	return instance, nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
