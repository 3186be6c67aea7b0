package cli

import (
	"bufio"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/snipurl/snip-cli/internal/api"
	"github.com/snipurl/snip-cli/internal/constants"
	"github.com/snipurl/snip-cli/internal/infrastructure/logger"
	"github.com/snipurl/snip-cli/internal/infrastructure/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newLoginCmd(app *App) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:               "login",
		Short:             "Authenticate and store the session",
		Args:              cobra.NoArgs,
		PersistentPreRunE: requireAnon(app),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := readSecretIfEmpty(cmd, password, "Password: ")
			if err != nil {
				return err
			}

			in := api.LoginInput{Email: strings.TrimSpace(email), Password: password}
			if err := validation.Validate(in); err != nil {
				return &Notice{Title: "Login failed", Description: constants.MsgLoginFailed}
			}

			auth, err := app.API.Login(cmd.Context(), in)
			if err != nil {
				return failure("Login failed", err, constants.MsgLoginFailed)
			}

			if err := persistSession(app, auth); err != nil {
				return genericFailure("Could not save session", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Welcome back, %s.\n", auth.User.DisplayName())
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password (prompted when omitted)")
	cmd.MarkFlagRequired("email")
	return cmd
}

func newRegisterCmd(app *App) *cobra.Command {
	var email, password, firstName, lastName string

	cmd := &cobra.Command{
		Use:               "register",
		Short:             "Create an account and log in",
		Args:              cobra.NoArgs,
		PersistentPreRunE: requireAnon(app),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := readSecretIfEmpty(cmd, password, "Password: ")
			if err != nil {
				return err
			}

			in := api.RegisterInput{
				Email:     strings.TrimSpace(email),
				Password:  password,
				FirstName: strings.TrimSpace(firstName),
				LastName:  strings.TrimSpace(lastName),
			}
			if err := validation.Validate(in); err != nil {
				return &Notice{Title: "Registration failed", Description: constants.MsgRegisterFailed}
			}

			auth, err := app.API.Register(cmd.Context(), in)
			if err != nil {
				return failure("Registration failed", err, constants.MsgRegisterFailed)
			}

			if err := persistSession(app, auth); err != nil {
				return genericFailure("Could not save session", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Account created. Welcome, %s.\n", auth.User.DisplayName())
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password, at least 8 characters (prompted when omitted)")
	cmd.Flags().StringVar(&firstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "last name")
	cmd.MarkFlagRequired("email")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Logging out while logged out is a no-op, not an error.
			if err := app.Store.Clear(); err != nil {
				return genericFailure("Could not clear session", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:               "whoami",
		Short:             "Show the stored profile and token expiry",
		Args:              cobra.NoArgs,
		PersistentPreRunE: requireAuth(app),
		RunE: func(cmd *cobra.Command, args []string) error {
			user := app.Store.User()
			if refresh || user == nil {
				fetched, err := app.API.CurrentUser(cmd.Context())
				if err != nil {
					return genericFailure("Could not fetch profile", err)
				}
				if err := app.Store.SetUser(fetched); err != nil {
					logger.Warn("persisting refreshed profile", zap.Error(err))
				}
				user = fetched
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s <%s>\n", user.DisplayName(), user.Email)
			if user.CreatedAt != "" {
				fmt.Fprintf(out, "member since %s\n", user.CreatedAt)
			}
			if exp, ok := tokenExpiry(app.Store.Token()); ok {
				fmt.Fprintf(out, "token expires %s\n", exp.Format(time.RFC1123))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "re-fetch the profile from the server")
	return cmd
}

// tokenExpiry reads the exp claim without verifying the signature. Display
// only; the session guard itself stays presence-based and the server remains
// the authority on token validity.
func tokenExpiry(token string) (time.Time, bool) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

func persistSession(app *App, auth *api.AuthSession) error {
	if err := app.Store.SetToken(auth.Token); err != nil {
		return err
	}
	return app.Store.SetUser(&auth.User)
}

func readSecretIfEmpty(cmd *cobra.Command, current, prompt string) (string, error) {
	if current != "" {
		return current, nil
	}
	fmt.Fprint(cmd.ErrOrStderr(), prompt)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil {
		return "", &Notice{Title: "No password given", Description: "Pass --password or type it at the prompt."}
	}
	return strings.TrimRight(line, "\r\n"), nil
}
