/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Command nsts runs the benchmark orchestrator as a server (accepting
// one client connection at a time) or as a client (driving a suite of
// profile executions against a server).
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	liberr "github.com/nabbar/nsts/errors"
	"github.com/nabbar/nsts/client"
	"github.com/nabbar/nsts/event"
	"github.com/nabbar/nsts/logger"
	"github.com/nabbar/nsts/logger/level"
	"github.com/nabbar/nsts/profile"
	_ "github.com/nabbar/nsts/profiles/dummy"
	_ "github.com/nabbar/nsts/profiles/httptransfer"
	_ "github.com/nabbar/nsts/profiles/iperf"
	_ "github.com/nabbar/nsts/profiles/ping"
	"github.com/nabbar/nsts/render"
	"github.com/nabbar/nsts/server"
	"github.com/nabbar/nsts/suitefile"
)

// Exit codes, grounded on common Unix convention and the project's own
// error taxonomy (errors.CodeError).
const (
	exitOK            = 0
	exitSuiteRuntime  = 1
	exitProtocol      = 2
	exitUserInterrupt = 130
	exitUnknown       = 3
)

var (
	flagConfig   string
	flagHost     string
	flagPort     int
	flagIPv6     bool
	flagLogLevel string

	flagSuiteFile string
	flagTests     string
	flagTimes     int
	flagInterval  time.Duration
)

func main() {
	os.Exit(run())
}

func run() int {
	root := &cobra.Command{
		Use:   "nsts",
		Short: "Network SpeedTest Suite orchestrator",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfigDefaults(cmd)
		},
	}
	root.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "optional config file (yaml/json/toml) supplying defaults for host/port/ipv6/log-level")
	root.PersistentFlags().StringVar(&flagHost, "host", "0.0.0.0", "address to bind or dial")
	root.PersistentFlags().IntVar(&flagPort, "port", 26532, "TCP port to bind or dial")
	root.PersistentFlags().BoolVar(&flagIPv6, "ipv6", false, "use IPv6 addressing")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "log level: critical|fatal|error|warning|info|debug")

	root.AddCommand(serveCmd(), runCmd())

	if err := root.ExecuteContext(context.Background()); err != nil {
		return exitCodeFor(err)
	}
	return exitOK
}

// loadConfigDefaults reads flagConfig, if set, and overrides any of
// host/port/ipv6/log-level that the user did not pass explicitly on the
// command line, mirroring the teacher's "--config overrides defaults,
// flags override --config" precedence.
func loadConfigDefaults(cmd *cobra.Command) error {
	if flagConfig == "" {
		return nil
	}

	v := viper.New()
	v.SetConfigFile(flagConfig)
	if err := v.ReadInConfig(); err != nil {
		return liberr.New(liberr.ParseError, "reading config file", err)
	}

	if !cmd.Flags().Changed("host") && v.IsSet("host") {
		flagHost = v.GetString("host")
	}
	if !cmd.Flags().Changed("port") && v.IsSet("port") {
		flagPort = v.GetInt("port")
	}
	if !cmd.Flags().Changed("ipv6") && v.IsSet("ipv6") {
		flagIPv6 = v.GetBool("ipv6")
	}
	if !cmd.Flags().Changed("log-level") && v.IsSet("log-level") {
		flagLogLevel = v.GetString("log-level")
	}

	return nil
}

func newLogger() logger.Logger {
	return logger.New(os.Stderr, level.Parse(flagLogLevel))
}

func withInterrupt(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sig:
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Accept one benchmark client connection at a time and serve registered profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := withInterrupt(cmd.Context())
			defer cancel()

			log := newLogger()
			srv := server.New(flagHost, flagPort, flagIPv6, profile.Default, log)

			err := srv.Serve(ctx)
			if err == context.Canceled {
				return errInterrupted{}
			}
			return err
		},
	}
}

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Connect to a server and run a suite of profile tests",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSuite(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&flagSuiteFile, "suite", "", "path to an INI-like suite file")
	cmd.Flags().StringVar(&flagTests, "tests", "", "comma-separated short form, e.g. iperf_tcp,ping-s")
	cmd.Flags().IntVar(&flagTimes, "times", 1, "number of samples per test (overridden by a test's own 'times' option)")
	cmd.Flags().DurationVar(&flagInterval, "interval", 0, "delay between repeated samples")
	return cmd
}

func runSuite(parent context.Context) error {
	ctx, cancel := withInterrupt(parent)
	defer cancel()

	spec, err := loadSuiteSpec()
	if err != nil {
		return err
	}

	log := newLogger()
	bus := event.New()
	progress := render.NewProgress(os.Stdout, bus)

	cl := client.New(flagHost, flagPort, flagIPv6, profile.Default, log, bus)
	if err = cl.Connect(ctx); err != nil {
		return err
	}
	defer func() { _ = cl.Close() }()

	result, err := cl.RunSuite(ctx, spec, flagTimes, flagInterval)

	for _, run := range result.Runs {
		if len(run.Samples) == 0 {
			render.RenderError(os.Stdout, fmt.Sprintf("%s (%s): no sample completed", run.ProfileID, run.Direction.String()))
			continue
		}
		render.RenderStatistics(os.Stdout, run)
	}

	progress.Wait()

	if ctx.Err() == context.Canceled {
		return errInterrupted{}
	}
	return err
}

func loadSuiteSpec() (*suitefile.Suite, error) {
	switch {
	case flagSuiteFile != "":
		f, err := os.Open(flagSuiteFile)
		if err != nil {
			return nil, liberr.New(liberr.ParseError, "opening suite file", err)
		}
		defer func() { _ = f.Close() }()
		return suitefile.LoadFile(f)

	case flagTests != "":
		return suitefile.ParseCommandLineList(flagTests)

	default:
		return nil, liberr.New(liberr.ParseError, "one of --suite or --tests is required", nil)
	}
}

// errInterrupted marks a run that stopped because of SIGINT/SIGTERM, so
// exitCodeFor can map it to the documented 130.
type errInterrupted struct{}

func (errInterrupted) Error() string { return "interrupted" }

func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return exitOK
	case liberr.Has(err, liberr.ConnectionClosed):
		return exitSuiteRuntime
	case liberr.Has(err, liberr.ProtocolError):
		return exitProtocol
	}

	if _, ok := err.(errInterrupted); ok {
		return exitUserInterrupt
	}

	if liberr.Is(err) {
		return exitSuiteRuntime
	}

	return exitUnknown
}
