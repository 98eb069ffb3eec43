// Package cli implements blogctl, the operator tool that works directly
// against the blog's storage: applying migrations, creating accounts
// (including the administrator) and managing posts.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/dmitrijs2005/gopherblog/internal/common"
	"github.com/dmitrijs2005/gopherblog/internal/server/config"
	"github.com/dmitrijs2005/gopherblog/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gopherblog/internal/server/services"
)

const generatedPasswordLen = 16

// ErrUsage reports a missing or unknown command.
var ErrUsage = errors.New("usage error")

const usage = `Usage: blogctl [flags] <command>

Commands:
  migrate            apply database migrations
  create-user        create an account (prompts for email, name and password;
                     an empty password is replaced by a generated one)
  list-posts         list all posts
  delete-post <id>   delete a post and its comments
  help               show this message`

type App struct {
	repomanager repomanager.RepositoryManager
	users       *services.UserService
	posts       *services.PostService
	adminID     int64
	reader      *bufio.Reader
	out         io.Writer
}

// NewApp opens the storage named by cfg.DatabaseDSN.
func NewApp(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer) (*App, error) {
	rm, err := repomanager.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	return newApp(rm, cfg.AdminUserID, in, out), nil
}

func newApp(rm repomanager.RepositoryManager, adminID int64, in io.Reader, out io.Writer) *App {
	return &App{
		repomanager: rm,
		users:       services.NewUserService(rm),
		posts:       services.NewPostService(rm),
		adminID:     adminID,
		reader:      bufio.NewReader(in),
		out:         out,
	}
}

func (a *App) Close() error {
	return a.repomanager.Close()
}

// Run executes one command. args holds the command name and its arguments.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, usage)
		return ErrUsage
	}

	switch cmd := args[0]; cmd {
	case "help":
		fmt.Fprintln(a.out, usage)
		return nil
	case "migrate":
		return a.migrate(ctx)
	case "create-user":
		return a.createUser(ctx)
	case "list-posts":
		return a.listPosts(ctx)
	case "delete-post":
		if len(args) < 2 {
			fmt.Fprintln(a.out, "Usage: delete-post <id>")
			return ErrUsage
		}
		return a.deletePost(ctx, args[1])
	default:
		fmt.Fprintln(a.out, "Unknown command:", cmd)
		fmt.Fprintln(a.out, usage)
		return ErrUsage
	}
}

func (a *App) migrate(ctx context.Context) error {
	if err := a.repomanager.RunMigrations(ctx); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}
	fmt.Fprintln(a.out, "Migrations applied.")
	return nil
}

func (a *App) createUser(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	name, err := GetSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}
	if err := validateAccount(email, name); err != nil {
		return err
	}

	generated := len(password) == 0
	if generated {
		pw, err := common.MakeRandString(generatedPasswordLen, common.AlphaNumeric)
		if err != nil {
			return fmt.Errorf("error generating password: %w", err)
		}
		password = []byte(pw)
	}

	user, err := a.users.Register(ctx, email, name, string(password))
	if err != nil {
		return fmt.Errorf("error creating user: %w", err)
	}

	fmt.Fprintf(a.out, "Created user #%d (%s).\n", user.ID, user.Email)
	if generated {
		fmt.Fprintf(a.out, "Generated password: %s\n", password)
	}
	if user.ID == a.adminID {
		fmt.Fprintln(a.out, "This account is the administrator.")
	}
	return nil
}

func (a *App) listPosts(ctx context.Context) error {
	posts, err := a.posts.List(ctx)
	if err != nil {
		return err
	}
	if len(posts) == 0 {
		fmt.Fprintln(a.out, "No posts.")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tAUTHOR\tTITLE")
	for _, p := range posts {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", p.ID, p.Date, p.AuthorName, p.Title)
	}
	return tw.Flush()
}

func (a *App) deletePost(ctx context.Context, raw string) error {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return fmt.Errorf("%w: invalid post id %q", ErrUsage, raw)
	}
	if err := a.posts.Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting post %d: %w", id, err)
	}
	fmt.Fprintf(a.out, "Deleted post #%d.\n", id)
	return nil
}
