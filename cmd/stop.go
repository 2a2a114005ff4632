package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"transit-manager/core/resolver"
	"transit-manager/core/transit"
	"transit-manager/core/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for stop commands
	stopScope    string
	stopAutoSave string
	stopName     string
	stopLat      float64
	stopLon      float64
	stopUpdate   bool
	stopFanOut   string
	busSort      string
	busReverse   bool
)

// stopCmd is the parent command for single stop operations.
var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Find, save or delete a single stop",
}

var stopFindCmd = &cobra.Command{
	Use:   "find <id>",
	Short: "Look a stop up across the configured sources",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := utils.ParseStopID(args[0])
		if err != nil {
			return err
		}
		scope, err := resolver.ParseScope(stopScope)
		if err != nil {
			return err
		}
		autoSave, err := utils.ParseOptionalBool(stopAutoSave)
		if err != nil {
			return err
		}

		return withResolver(cmd.Context(), func(r *resolver.Resolver, l *zap.Logger) error {
			stop, err := r.FindStop(cmd.Context(), id, scope, resolver.AutoSaveFrom(autoSave))
			if err != nil {
				return err
			}
			return printJSON(stop)
		})
	},
}

var stopSaveCmd = &cobra.Command{
	Use:   "save <id>",
	Short: "Save a stop through the Stop Setters",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := utils.ParseStopID(args[0])
		if err != nil {
			return err
		}
		fanOut, err := resolver.ParseFanOut(stopFanOut)
		if err != nil {
			return err
		}

		var lat, lon *float64
		if cmd.Flags().Changed("lat") {
			lat = transit.Float(stopLat)
		}
		if cmd.Flags().Changed("lon") {
			lon = transit.Float(stopLon)
		}
		stop, err := transit.NewStop(id, stopName, lat, lon)
		if err != nil {
			return err
		}

		return withResolver(cmd.Context(), func(r *resolver.Resolver, l *zap.Logger) error {
			if err := r.SaveStop(cmd.Context(), stop, stopUpdate, fanOut); err != nil {
				return err
			}
			l.Info("Stop saved", zap.Int("stop_id", id))
			return nil
		})
	},
}

var stopDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a stop through the Stop Deleters",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := utils.ParseStopID(args[0])
		if err != nil {
			return err
		}
		fanOut, err := resolver.ParseFanOut(stopFanOut)
		if err != nil {
			return err
		}

		return withResolver(cmd.Context(), func(r *resolver.Resolver, l *zap.Logger) error {
			if err := r.DeleteStop(cmd.Context(), id, fanOut); err != nil {
				return err
			}
			l.Info("Stop deleted", zap.Int("stop_id", id))
			return nil
		})
	},
}

var stopBusesCmd = &cobra.Command{
	Use:   "buses <id>",
	Short: "List the upcoming buses of a stop",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := utils.ParseStopID(args[0])
		if err != nil {
			return err
		}
		sortBy, err := transit.ParseSortMethod(busSort)
		if err != nil {
			return err
		}

		return withResolver(cmd.Context(), func(r *resolver.Resolver, l *zap.Logger) error {
			buses, err := r.GetBuses(cmd.Context(), id, sortBy, busReverse)
			if err != nil {
				return err
			}
			return printJSON(map[string]any{"buses": buses})
		})
	},
}

// withResolver opens the backends, runs fn and closes them again.
func withResolver(ctx context.Context, fn func(r *resolver.Resolver, l *zap.Logger) error) error {
	env, err := setup(ctx)
	if err != nil {
		return err
	}
	defer env.Close()
	return fn(env.backends.Resolver, env.log)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}

func init() {
	stopFindCmd.Flags().StringVar(&stopScope, "scope", "all", "Getters to query: all, online or offline")
	stopFindCmd.Flags().StringVar(&stopAutoSave, "autosave", "", "Override auto save of stops found online (true/false)")

	stopSaveCmd.Flags().StringVar(&stopName, "name", "", "Stop name")
	stopSaveCmd.Flags().Float64Var(&stopLat, "lat", 0, "Latitude")
	stopSaveCmd.Flags().Float64Var(&stopLon, "lon", 0, "Longitude")
	stopSaveCmd.Flags().BoolVar(&stopUpdate, "update", false, "Overwrite existing records")
	stopSaveCmd.Flags().StringVar(&stopFanOut, "fanout", "", "Setter policy: first or all (default from config)")

	stopDeleteCmd.Flags().StringVar(&stopFanOut, "fanout", "", "Deleter policy: first or all (default from config)")

	stopBusesCmd.Flags().StringVar(&busSort, "sort", "time", "Sort key: none, time, line, route, line_route, time_line, time_route, time_line_route")
	stopBusesCmd.Flags().BoolVar(&busReverse, "reverse", false, "Reverse the order")

	stopCmd.AddCommand(stopFindCmd, stopSaveCmd, stopDeleteCmd, stopBusesCmd)
	RootCmd.AddCommand(stopCmd)
}
