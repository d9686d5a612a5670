package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"Catalog/internal/cli/api"
	"Catalog/internal/config"
)

type registerCmd struct{}

func (registerCmd) Name() string        { return "register" }
func (registerCmd) Description() string { return "Create an account and store the token" }
func (registerCmd) Usage() string       { return "register <username> <email> <password>" }

func (registerCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 3 {
		return ErrUsage
	}
	c := api.NewClient(cfg.ServerURL, "")
	res, err := c.Register(ctx, args[0], args[1], args[2])
	if err != nil {
		if api.StatusOf(err) == http.StatusConflict {
			return fmt.Errorf("already in use: %w", err)
		}
		return err
	}
	if err := persistAuth(cfg, res); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Registered and logged in as %s\n", res.User.Username)
	return nil
}

type loginCmd struct{}

func (loginCmd) Name() string        { return "login" }
func (loginCmd) Description() string { return "Login and store the token" }
func (loginCmd) Usage() string       { return "login <username> <password>" }

func (loginCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	c := api.NewClient(cfg.ServerURL, "")
	res, err := c.Login(ctx, args[0], args[1])
	if err != nil {
		if api.StatusOf(err) == http.StatusUnauthorized {
			return errors.New("invalid login or password")
		}
		return err
	}
	if err := persistAuth(cfg, res); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Logged in successfully")
	return nil
}

type logoutCmd struct{}

func (logoutCmd) Name() string        { return "logout" }
func (logoutCmd) Description() string { return "Forget the stored token" }
func (logoutCmd) Usage() string       { return "logout" }

func (logoutCmd) Run(_ context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	if err := NewAuthStore(cfg).Clear(); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Logged out")
	return nil
}

type whoamiCmd struct{}

func (whoamiCmd) Name() string        { return "whoami" }
func (whoamiCmd) Description() string { return "Show the logged in user" }
func (whoamiCmd) Usage() string       { return "whoami" }

func (whoamiCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	c, err := client(cfg, true)
	if err != nil {
		return err
	}
	id, err := NewAuthStore(cfg).LoadUserID()
	if err != nil {
		return ErrNotLoggedIn
	}
	u, err := c.User(ctx, id)
	if err != nil {
		if api.StatusOf(err) == http.StatusUnauthorized {
			return fmt.Errorf("session expired, login again: %w", err)
		}
		return err
	}
	role := "user"
	if u.IsAdmin {
		role = "admin"
	}
	fmt.Fprintf(Out, "%s <%s> id=%d role=%s\n", u.Username, u.Email, u.ID, role)
	return nil
}

func init() {
	RegisterCmd(registerCmd{})
	RegisterCmd(loginCmd{})
	RegisterCmd(logoutCmd{})
	RegisterCmd(whoamiCmd{})
}
