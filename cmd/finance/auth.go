package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/smart-finance/internal/cli"
	"github.com/Veraticus/smart-finance/internal/model"
	"github.com/Veraticus/smart-finance/internal/session"
)

func loginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and remember the session",
		Long: `Log in with your email and password. The session is stored locally and
used by every other command until you log out.

Missing values are prompted for.`,
		Args: cobra.NoArgs,
		RunE: runLogin,
	}

	cmd.Flags().StringP("email", "e", "", "account email")
	cmd.Flags().StringP("password", "p", "", "account password")

	return cmd
}

func runLogin(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")

	reader := cli.NewNonBlockingReader(cmd.InOrStdin())
	var err error
	if email == "" {
		if email, err = reader.Prompt(ctx, out, "Email", true); err != nil {
			return err
		}
	}
	if password == "" {
		if password, err = reader.Prompt(ctx, out, "Password", true); err != nil {
			return err
		}
	}

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	sess, err := a.auth.Login(ctx, email, password)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Logged in as %s (%s)", sess.Name, sess.Email)))
	return nil
}

func registerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		Args:  cobra.NoArgs,
		RunE:  runRegister,
	}

	cmd.Flags().StringP("name", "n", "", "display name")
	cmd.Flags().StringP("email", "e", "", "account email")
	cmd.Flags().StringP("password", "p", "", "account password (at least 6 characters)")
	cmd.Flags().StringP("currency", "c", session.DefaultCurrency, "ISO currency code")

	return cmd
}

func runRegister(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	req := model.RegisterRequest{}
	req.Name, _ = cmd.Flags().GetString("name")
	req.Email, _ = cmd.Flags().GetString("email")
	req.Password, _ = cmd.Flags().GetString("password")
	req.Currency, _ = cmd.Flags().GetString("currency")

	reader := cli.NewNonBlockingReader(cmd.InOrStdin())
	prompts := []struct {
		value *string
		label string
	}{
		{&req.Name, "Name"},
		{&req.Email, "Email"},
		{&req.Password, "Password"},
	}
	for _, p := range prompts {
		if *p.value != "" {
			continue
		}
		answer, err := reader.Prompt(ctx, out, p.label, true)
		if err != nil {
			return err
		}
		*p.value = answer
	}

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	sess, err := a.auth.Register(ctx, req)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Welcome, %s! Amounts are shown in %s.", sess.Name, sess.Currency)))
	return nil
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.auth.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Logged out"))
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			sess, err := a.currentSession()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s <%s>\n", cli.BoldStyle.Render(sess.Name), cli.SubtleStyle.Render(fmt.Sprintf("#%d", sess.UserID)), sess.Email)
			fmt.Fprintf(out, "Currency: %s\n", sess.Currency)
			fmt.Fprintf(out, "Server:   %s\n", a.client.BaseURL())

			if expiry, ok := session.TokenExpiry(sess.Token); ok {
				line := "Token expires " + expiry.Local().Format(time.RFC1123)
				if expiry.Before(time.Now()) {
					fmt.Fprintln(out, cli.FormatWarning(line+" (expired; requests may be rejected)"))
				} else {
					fmt.Fprintln(out, cli.SubtleStyle.Render(line))
				}
			}
			fmt.Fprintf(out, "Session:  %s\n", cli.SubtleStyle.Render(a.cfg.Session.Backend+" "+a.cfg.Session.Path))
			return nil
		},
	}
}
