package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"chatline/internal/profile"
	"chatline/internal/session"

	"github.com/spf13/cobra"
)

const (
	configFlag   = "config"
	emailFlag    = "email"
	passwordFlag = "password"
)

var rootCmd = &cobra.Command{
	Use:           "chatline",
	Short:         "One-to-one messaging from the terminal",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().String(configFlag, "config", "config file name, without extension")
	rootCmd.PersistentFlags().String(emailFlag, os.Getenv("CHATLINE_EMAIL"), "account email")
	rootCmd.PersistentFlags().String(passwordFlag, os.Getenv("CHATLINE_PASSWORD"), "account password")

	registerCmd.Flags().String("confirm", "", "password confirmation")
	profileCmd.Flags().String("nickname", "", "new nickname")
	profileCmd.Flags().String("username", "", "new username")
	profileCmd.Flags().String("bio", "", "new bio")

	rootCmd.AddCommand(migrateCmd, registerCmd, searchCmd, chatsCmd, chatCmd, profileCmd, avatarCmd)
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create missing tables and indexes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.Close()
		return a.migrate(cmd.Context())
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and its profile",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		email, password := credentials(cmd)
		confirm, _ := cmd.Flags().GetString("confirm")
		s, err := a.manager.Register(cmd.Context(), email, password, confirm)
		if err != nil {
			return err
		}
		defer s.Logout(context.Background())

		a.renderer.RenderProfile(s.Profile())
		return nil
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <prefix>",
	Short: "Find users by username prefix",
	Args:  cobra.ExactArgs(1),
	RunE: withSession(func(cmd *cobra.Command, a *app, s *session.Session, args []string) error {
		_, err := s.Search(cmd.Context(), args[0])
		return err
	}),
}

var chatsCmd = &cobra.Command{
	Use:   "chats",
	Short: "Show the live conversation list until interrupted",
	Args:  cobra.NoArgs,
	RunE: withSession(func(cmd *cobra.Command, a *app, s *session.Session, args []string) error {
		if err := s.OpenConversationList(); err != nil {
			return err
		}
		<-cmd.Context().Done()
		return nil
	}),
}

var chatCmd = &cobra.Command{
	Use:   "chat <username>",
	Short: "Open a conversation and send each line read from stdin",
	Args:  cobra.ExactArgs(1),
	RunE: withSession(func(cmd *cobra.Command, a *app, s *session.Session, args []string) error {
		res, err := s.StartChat(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		a.renderer.SetTitle(res.Peer)

		lines := make(chan string)
		go func() {
			defer close(lines)
			scanner := bufio.NewScanner(os.Stdin)
			for scanner.Scan() {
				lines <- scanner.Text()
			}
		}()

		for {
			select {
			case <-cmd.Context().Done():
				return nil
			case line, ok := <-lines:
				if !ok {
					return nil
				}
				// failures are already reported on screen
				_ = s.Send(cmd.Context(), line)
			}
		}
	}),
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or edit your profile",
	Args:  cobra.NoArgs,
	RunE: withSession(func(cmd *cobra.Command, a *app, s *session.Session, args []string) error {
		flags := cmd.Flags()
		if !flags.Changed("nickname") && !flags.Changed("username") && !flags.Changed("bio") {
			a.renderer.RenderProfile(s.Profile())
			return nil
		}

		current := s.Profile()
		nickname, username, bio := current.Nickname, current.Username, current.Bio
		if flags.Changed("nickname") {
			nickname, _ = flags.GetString("nickname")
		}
		if flags.Changed("username") {
			username, _ = flags.GetString("username")
		}
		if flags.Changed("bio") {
			bio, _ = flags.GetString("bio")
		}

		updated, err := s.UpdateProfile(cmd.Context(), nickname, username, bio)
		if err != nil {
			return err
		}
		a.renderer.RenderProfile(*updated)
		return nil
	}),
}

var avatarCmd = &cobra.Command{
	Use:   "avatar <image-file>",
	Short: "Upload a new avatar",
	Args:  cobra.ExactArgs(1),
	RunE: withSession(func(cmd *cobra.Command, a *app, s *session.Session, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		uri, err := s.UploadAvatar(cmd.Context(), profile.AvatarUpload{
			Filename: filepath.Base(args[0]),
			Data:     data,
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), uri)
		return nil
	}),
}

func setup(cmd *cobra.Command) (*app, error) {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	cobra.OnFinalize(stop)
	cmd.SetContext(ctx)

	name, _ := cmd.Flags().GetString(configFlag)
	return newApp(ctx, name)
}

func credentials(cmd *cobra.Command) (string, string) {
	email, _ := cmd.Flags().GetString(emailFlag)
	password, _ := cmd.Flags().GetString(passwordFlag)
	return email, password
}

// withSession signs in before running fn and logs out afterwards.
func withSession(fn func(cmd *cobra.Command, a *app, s *session.Session, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		email, password := credentials(cmd)
		s, err := a.manager.Login(cmd.Context(), email, password)
		if err != nil {
			return err
		}
		defer func() {
			if s.Active() {
				_ = s.Logout(context.Background())
			}
		}()

		return fn(cmd, a, s, args)
	}
}
