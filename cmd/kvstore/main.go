// Command kvstore boots a LoadBalancer from a YAML topology file and runs a
// small interactive loop over it: "put key value", "get key", "add id",
// "remove id". It exists to exercise the config and loadbalancer packages
// end to end, the way a teaching example wires a library together rather
// than as a production server.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/calincoman/Load-Balancer/config"
	"github.com/calincoman/Load-Balancer/kvmetrics"
	"github.com/calincoman/Load-Balancer/loadbalancer"
	"github.com/calincoman/Load-Balancer/ring"
)

func main() {
	topologyPath := flag.String("topology", "", "path to a YAML topology file listing initial server ids")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	logger, err := newLogger(*verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to build logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	lb := loadbalancer.New(
		loadbalancer.Logger(logger),
		loadbalancer.Metrics(kvmetrics.New(nil)),
	)

	if *topologyPath != "" {
		data, err := os.ReadFile(*topologyPath)
		if err != nil {
			logger.Fatal("failed to read topology file", zap.Error(err))
		}
		top, err := config.Parse(data)
		if err != nil {
			logger.Fatal("failed to parse topology file", zap.Error(err))
		}
		if err := top.Apply(lb); err != nil {
			logger.Fatal("failed to seed topology", zap.Error(err))
		}
		logger.Info("topology applied", zap.Int("servers", len(top.Servers)))
	}

	runREPL(lb, logger, os.Stdin, os.Stdout)
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func runREPL(lb *loadbalancer.LoadBalancer, logger *zap.Logger, in *os.File, out *os.File) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "put":
			if len(fields) != 3 {
				fmt.Fprintln(out, "usage: put <key> <value>")
				continue
			}
			id, err := lb.Store(fields[1], fields[2])
			if err != nil {
				fmt.Fprintln(out, "error:", err)
				continue
			}
			fmt.Fprintf(out, "stored on server %d\n", id)

		case "get":
			if len(fields) != 2 {
				fmt.Fprintln(out, "usage: get <key>")
				continue
			}
			value, found, id, err := lb.Retrieve(fields[1])
			if err != nil {
				fmt.Fprintln(out, "error:", err)
				continue
			}
			if !found {
				fmt.Fprintln(out, "not found")
				continue
			}
			fmt.Fprintf(out, "%s (server %d)\n", value, id)

		case "add":
			if len(fields) != 2 {
				fmt.Fprintln(out, "usage: add <server-id>")
				continue
			}
			id, err := parseServerID(fields[1])
			if err != nil {
				fmt.Fprintln(out, "error:", err)
				continue
			}
			if err := lb.AddServer(id); err != nil {
				fmt.Fprintln(out, "error:", err)
				continue
			}
			fmt.Fprintln(out, "ok")

		case "remove":
			if len(fields) != 2 {
				fmt.Fprintln(out, "usage: remove <server-id>")
				continue
			}
			id, err := parseServerID(fields[1])
			if err != nil {
				fmt.Fprintln(out, "error:", err)
				continue
			}
			if err := lb.RemoveServer(id); err != nil {
				fmt.Fprintln(out, "error:", err)
				continue
			}
			fmt.Fprintln(out, "ok")

		default:
			logger.Warn("unknown command", zap.String("command", fields[0]))
			fmt.Fprintln(out, "unknown command:", fields[0])
		}
	}
}

func parseServerID(s string) (ring.ServerID, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid server id %q: %w", s, err)
	}
	return ring.ServerID(n), nil
}
