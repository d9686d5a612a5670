package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"Catalog/internal/cli/api"
	"Catalog/internal/cli/repo"
	fsrepo "Catalog/internal/cli/repo/fs"
	"Catalog/internal/config"
)

// ErrUsage is returned by a command when arguments are invalid and usage should be shown.
var ErrUsage = errors.New("usage")

// ErrNotLoggedIn - нет сохранённого токена.
var ErrNotLoggedIn = errors.New("not logged in, run `login` first")

// Command represents a CLI subcommand.
type Command interface {
	// Name returns the command name as typed by the user, e.g. "login".
	Name() string
	// Description is a short human-readable description shown in help.
	Description() string
	// Usage returns the exact usage string, e.g. "login <username> <password>".
	Usage() string
	// Run executes the command with provided args (without the command name).
	Run(ctx context.Context, cfg *config.Config, args []string) error
}

// registry holds available commands by name.
var registry = map[string]Command{}

// Out - общий writer для вывода CLI. По умолчанию os.Stdout, но в тестах может переназначаться.
var Out io.Writer = os.Stdout

// NewAuthStore строит хранилище токена; в тестах может подменяться.
var NewAuthStore = func(cfg *config.Config) repo.AuthStore {
	return fsrepo.AuthFSStore{TokenFile: cfg.TokenFile}
}

// RegisterCmd adds a command to the registry. Should be called from init() of each command.
func RegisterCmd(cmd Command) {
	registry[cmd.Name()] = cmd
}

// Get returns a command by name.
func Get(name string) (Command, bool) {
	c, ok := registry[name]
	return c, ok
}

// List returns all registered commands sorted by name.
func List() []Command {
	list := make([]Command, 0, len(registry))
	for _, c := range registry {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name() < list[j].Name() })
	return list
}

// FormatGlobalUsage builds a help text for all commands.
func FormatGlobalUsage() string {
	lines := []string{
		"Catalog CLI",
		"",
		"Usage:",
		"  catalog-cli [--base-url <host:port>] [--token-file <path>] <command> [args]",
		"",
		"Commands:",
	}
	for _, c := range List() {
		lines = append(lines, fmt.Sprintf("  %-50s %s", c.Usage(), c.Description()))
	}
	return strings.Join(lines, "\n") + "\n"
}

// client возвращает API клиент; с requireToken без сохранённого токена - ErrNotLoggedIn.
func client(cfg *config.Config, requireToken bool) (*api.Client, error) {
	token, err := NewAuthStore(cfg).Load()
	if err != nil {
		if requireToken {
			return nil, ErrNotLoggedIn
		}
		token = ""
	}
	return api.NewClient(cfg.ServerURL, token), nil
}

// persistAuth сохраняет токен и id пользователя после login/register.
func persistAuth(cfg *config.Config, res *api.AuthResult) error {
	st := NewAuthStore(cfg)
	if err := st.Save(res.Token); err != nil {
		return fmt.Errorf("saving auth: %w", err)
	}
	if err := st.SaveUserID(res.User.ID); err != nil {
		return fmt.Errorf("saving auth: %w", err)
	}
	return nil
}

// idList - повторяемый флаг с числовыми id (--tag 1 --tag 2 или --tag 1,2).
type idList []int64

func (l *idList) String() string {
	parts := make([]string, 0, len(*l))
	for _, id := range *l {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	return strings.Join(parts, ",")
}

func (l *idList) Set(v string) error {
	for _, part := range strings.Split(v, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil || id <= 0 {
			return fmt.Errorf("invalid id %q", part)
		}
		*l = append(*l, id)
	}
	return nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrUsage
	}
	return id, nil
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func printItem(it *api.Item) {
	fmt.Fprintf(Out, "id:          %d\n", it.ID)
	fmt.Fprintf(Out, "uuid:        %s\n", it.UUID)
	fmt.Fprintf(Out, "name:        %s\n", it.Name)
	fmt.Fprintf(Out, "description: %s\n", it.Description)
	fmt.Fprintf(Out, "owner:       %s\n", orDash(it.Owner))
	fmt.Fprintf(Out, "category:    %s\n", orDash(it.Category))
	fmt.Fprintf(Out, "tags:        %s\n", strings.Join(it.Tags, ", "))
	fmt.Fprintf(Out, "created:     %s\n", it.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(Out, "updated:     %s\n", it.UpdatedAt.Format("2006-01-02 15:04:05"))
}
