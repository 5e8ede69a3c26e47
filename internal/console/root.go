// Package console is the operator CLI for the course admin API. Every
// command drives the same view controllers the admin screens use.
package console

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ynastt/course-admin/internal/client"
	"github.com/ynastt/course-admin/internal/view"
)

// errNoticed marks failures the user already saw as a notice.
var errNoticed = errors.New("reported")

func noticed(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", errNoticed, err)
}

type app struct {
	v      *viper.Viper
	out    io.Writer
	errOut io.Writer
}

func (a *app) client() *client.Client {
	return client.New(a.v.GetString("api-url"), a.v.GetDuration("timeout"))
}

func (a *app) logger() *slog.Logger {
	level := slog.LevelWarn
	if a.v.GetBool("verbose") {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(a.errOut, &slog.HandlerOptions{Level: level}))
}

func (a *app) notifier() view.Notifier {
	if a.v.GetBool("verbose") {
		return view.Notifiers{printNotifier{w: a.errOut}, view.LogNotifier{Logger: a.logger()}}
	}
	return printNotifier{w: a.errOut}
}

func (a *app) printer() printer {
	return printer{w: a.out, format: a.v.GetString("output")}
}

// NewRootCmd builds the command tree writing to out and errOut.
func NewRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{v: viper.New(), out: out, errOut: errOut}

	root := &cobra.Command{
		Use:           "course-admin",
		Short:         "Manage courses, videos and custom product fields",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.loadConfig()
		},
	}

	flags := root.PersistentFlags()
	flags.String("api-url", "http://localhost:8080", "base URL of the course admin API")
	flags.String("playback-url", "", "base URL prefixed to HLS playlists of uploaded videos")
	flags.Duration("timeout", 30*time.Second, "request timeout")
	flags.StringP("output", "o", "text", "output format: text or yaml")
	flags.BoolP("verbose", "v", false, "log view state updates")
	flags.String("config", "", "config file (default $HOME/.config/course-admin.yaml)")
	_ = a.v.BindPFlags(flags)

	root.AddCommand(
		newTeamsCmd(a),
		newFieldsCmd(a),
		newCoursesCmd(a),
		newProductsCmd(a),
	)
	return root
}

func (a *app) loadConfig() error {
	a.v.SetEnvPrefix("CONSOLE")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	if path := a.v.GetString("config"); path != "" {
		a.v.SetConfigFile(path)
	} else {
		a.v.SetConfigName("course-admin")
		a.v.SetConfigType("yaml")
		if home, err := os.UserHomeDir(); err == nil {
			a.v.AddConfigPath(home + "/.config")
		}
	}

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || a.v.GetString("config") != "" {
			return fmt.Errorf("read config: %w", err)
		}
	}

	switch a.v.GetString("output") {
	case "text", "yaml":
	default:
		return fmt.Errorf("unsupported output format %q", a.v.GetString("output"))
	}
	return nil
}

// Execute runs the console and returns the process exit code.
func Execute(args []string, out, errOut io.Writer) int {
	root := NewRootCmd(out, errOut)
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(errOut)

	if err := root.Execute(); err != nil {
		if !errors.Is(err, errNoticed) {
			fmt.Fprintln(errOut, "Error:", err)
		}
		return 1
	}
	return 0
}
