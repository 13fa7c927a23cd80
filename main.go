package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/functils/functils/config"
	"github.com/functils/functils/errors"
	"github.com/functils/functils/list"
	"github.com/functils/functils/log"
	"github.com/functils/functils/script"
	"github.com/functils/functils/store"
)

func main() {
	rootCmd := newRootCmd()

	err := rootCmd.Execute()
	if err != nil {
		zerolog.Ctx(context.Background()).Fatal().Err(err).Msg("")
	}
}

// logFlags are the persistent logging flags shared by every command.
type logFlags struct {
	level   string
	json    bool
	noColor bool
}

func (f *logFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.level, "log-level", "info", "Log level")
	fs.BoolVar(&f.json, "log-json", false, "Output log in JSON format")
	fs.BoolVar(&f.noColor, "no-color", false, "Disable log color")
}

func newRootCmd() *cobra.Command {
	var (
		lf   logFlags
		port string
	)

	rootCmd := &cobra.Command{
		Use:   "functils",
		Short: "List playground for the functils helpers",
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logLevel, err := zerolog.ParseLevel(lf.level)
			if err != nil {
				log.InitGlobals(0, lf.json, true).Fatal().Msg("Unknown log level")
			}

			lg := log.InitGlobals(logLevel, lf.json, lf.noColor)
			ctx := lg.WithContext(cmd.Context())
			cmd.SetContext(ctx)
		},
	}

	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	lf.register(rootCmd.PersistentFlags())
	rootCmd.PersistentFlags().StringVar(&port, "port", config.Port(), "Server port number")

	demoCmd := &cobra.Command{
		Use:   "demo",
		Short: "Print a walk through the list operations",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			runDemo(cmd.OutOrStdout())
		},
	}

	evalCmd := &cobra.Command{
		Use:   "eval [op...]",
		Short: "Run a list script locally",
		Example: `  functils eval --items 3,2,1 "cons 4" head show
  functils eval --script "cons a; cons b; uncons"
  functils eval --file script.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := evalRequestFromFlags(cmd.Flags(), args)
			if err != nil {
				return err
			}

			return runEval(cmd.Context(), cmd.OutOrStdout(), req)
		},
	}

	addEvalFlags(evalCmd.Flags())

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			storeURI, err := cmd.Flags().GetString("store-uri")
			if err != nil {
				return err //nolint:wrapcheck
			}

			driverLog, err := cmd.Flags().GetBool("mongo-log")
			if err != nil {
				return err //nolint:wrapcheck
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runServer(ctx, port, storeURI, store.ConnectOptions{DriverLog: driverLog})
		},
	}

	serveCmd.Flags().String("store-uri", config.MongoURI(),
		"MongoDB connection string for stored lists (in memory if empty)")
	serveCmd.Flags().Bool("mongo-log", config.MongoLog(), "Log MongoDB driver commands")

	rootCmd.AddCommand(demoCmd, evalCmd, serveCmd, newRemoteCmd(&port))

	return rootCmd
}

func newRemoteCmd(port *string) *cobra.Command {
	remoteCmd := &cobra.Command{
		Use:   "remote",
		Short: "Talk to a running server",
	}

	evalCmd := &cobra.Command{
		Use:   "eval [op...]",
		Short: "Run a list script on the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := evalRequestFromFlags(cmd.Flags(), args)
			if err != nil {
				return err
			}

			req.Name, _ = cmd.Flags().GetString("name")

			return NewClient(*port).Eval(cmd.Context(), req)
		},
	}

	addEvalFlags(evalCmd.Flags())
	evalCmd.Flags().String("name", "", "Stored list to run the script on")

	listsCmd := &cobra.Command{
		Use:   "lists",
		Short: "Show the names of stored lists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return NewClient(*port).Lists(cmd.Context())
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a stored list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewClient(*port).Delete(cmd.Context(), args[0])
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Get the server status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return NewClient(*port).Status(cmd.Context())
		},
	}

	remoteCmd.AddCommand(evalCmd, listsCmd, deleteCmd, statusCmd)

	return remoteCmd
}

func addEvalFlags(fs *pflag.FlagSet) {
	fs.StringSlice("items", nil, "Initial list elements, front first")
	fs.String("script", "", "Script text; operations separated by newlines or ';'")
	fs.StringP("file", "f", "", "YAML script file")
}

// evalRequestFromFlags builds a script request from the eval flags.
// Operations run in this order: the file, --script, then the positional args.
func evalRequestFromFlags(fs *pflag.FlagSet, args []string) (*script.Request, error) {
	req := &script.Request{}

	if path, _ := fs.GetString("file"); path != "" {
		var err error

		req, err = script.LoadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "load %q", path)
		}
	}

	if fs.Changed("items") {
		req.Items, _ = fs.GetStringSlice("items")
	}

	text, _ := fs.GetString("script")
	for _, s := range []string{req.Script, text} {
		ops, err := script.Parse(s)
		if err != nil {
			return nil, errors.Wrap(err, "parse script")
		}

		req.Ops = append(req.Ops, ops...)
	}

	req.Script = ""

	for _, arg := range args {
		op, err := script.ParseOp(arg)
		if err != nil {
			return nil, errors.Wrapf(err, "argument %q", arg)
		}

		req.Ops = append(req.Ops, op)
	}

	return req, nil
}

// runEval runs req locally and prints its output followed by the final list.
func runEval(ctx context.Context, w io.Writer, req *script.Request) error {
	err := req.Validate()
	if err != nil {
		return errors.Wrap(err, "invalid script")
	}

	res, err := script.Run(ctx, req.InitialList(), req.Ops)
	if err != nil {
		return errors.Wrap(err, "run")
	}

	for _, line := range res.Output {
		fmt.Fprintln(w, line)
	}

	fmt.Fprintln(w, "=>", res.List)

	return nil
}

// runDemo walks through cons, append, null, head and tail.
func runDemo(w io.Writer) {
	list1 := list.New[int]()
	list2 := list.New[int]()
	list3 := list.New[int]()

	for i := 1; i <= 4; i++ {
		list1.Cons(i)
		list2.Cons(5 - i)
	}

	fmt.Fprintln(w, "list1:", list1)
	fmt.Fprintln(w, "list2:", list2)
	fmt.Fprintln(w, "list3:", list3)

	// list2 is consumed
	list1.Append(list2)
	fmt.Fprintln(w, "list1:", list1)

	fmt.Fprintln(w, "Is list3 null:", list3.Null())

	fmt.Fprintln(w, "list1.head():", list1.Head())
	fmt.Fprintln(w, "list1:", list1)

	fmt.Fprintln(w, "list1.tail():", list1.Tail())
}
