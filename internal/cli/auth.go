package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/qaza-tracker/internal/domain"
	"github.com/heartmarshall/qaza-tracker/internal/service/identity"
)

func newLoginCmd(envFn func() *env) *cobra.Command {
	var (
		name   string
		age    int
		gender string
	)

	cmd := &cobra.Command{
		Use:   "login <email>",
		Short: "Sign in, registering the profile on first use",
		Long: `Sign in with an email identifier. An unknown identifier is registered,
which needs --name, --age and --gender.

Examples:
  qaza login a@gmail.com
  qaza login a@gmail.com --name Aisha --age 25 --gender female`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e := envFn()
			out := cmd.OutOrStdout()

			res, err := e.identity.SignIn(cmd.Context(), identity.SignInInput{
				Identifier:  args[0],
				DisplayName: name,
				Age:         age,
				Gender:      domain.Gender(strings.ToLower(gender)),
			})
			if errors.Is(err, identity.ErrRegistrationRequired) {
				return usageError("%s is not registered yet; pass --name, --age and --gender", args[0])
			}
			if res == nil {
				if err == nil {
					err = domain.ErrRemoteUnavailable
				}
				return fmt.Errorf("sign in: %w", err)
			}
			if err != nil {
				e.log.WarnContext(cmd.Context(), "session not persisted", "error", err.Error())
			}

			if e.jsonOut {
				return printJSON(out, map[string]any{"profile": res.Profile, "created": res.Created})
			}
			verb := "Signed in as"
			if res.Created {
				verb = "Registered and signed in as"
			}
			fmt.Fprintf(out, "%s %s <%s>\n", verb, res.Profile.DisplayName, res.Profile.Identifier)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&name, "name", "", "display name (registration only)")
	f.IntVar(&age, "age", 0, "age in years (registration only)")
	f.StringVar(&gender, "gender", "", "male or female (registration only)")
	return cmd
}

func newLogoutCmd(envFn func() *env) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the signed-in profile on this machine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e := envFn()
			if err := e.identity.SignOut(cmd.Context()); err != nil {
				return err
			}
			if e.jsonOut {
				return printJSON(cmd.OutOrStdout(), map[string]bool{"signedOut": true})
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return nil
		},
	}
}

func newWhoamiCmd(envFn func() *env) *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e := envFn()
			p, err := e.profile()
			if err != nil {
				return err
			}

			if refresh {
				res, err := e.identity.SignIn(cmd.Context(), identity.SignInInput{Identifier: p.Identifier})
				switch {
				case res != nil:
					p = &res.Profile
				case errors.Is(err, identity.ErrRegistrationRequired):
					return fmt.Errorf("profile %s no longer exists on the ledger: %w", p.Identifier, domain.ErrNotFound)
				default:
					fmt.Fprintln(cmd.ErrOrStderr(), "warning: ledger unavailable, showing cached profile")
				}
			}

			if e.jsonOut {
				return printJSON(cmd.OutOrStdout(), p)
			}
			printProfile(cmd.OutOrStdout(), *p)
			return nil
		},
	}
	cmd.Flags().BoolVar(&refresh, "refresh", false, "reload the profile from the ledger")
	return cmd
}
