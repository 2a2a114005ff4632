package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"

	"transit-manager/core/bootstrap"
	"transit-manager/core/config"
	"transit-manager/core/resolver"
	"transit-manager/core/transit"
)

// Prints, for one stop id, what every persistent store and the resolver answer.
// Usage: debug_stores <stop id>
func main() {
	if len(os.Args) != 2 {
		log.Fatal("usage: debug_stores <stop id>")
	}
	stopID, err := strconv.Atoi(os.Args[1])
	if err != nil {
		log.Fatal(err)
	}

	// Load config
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	backends, err := bootstrap.Build(ctx, cfg, nil)
	if err != nil {
		log.Fatal(err)
	}
	defer backends.Close()

	output := map[string]interface{}{"stop_id": stopID}

	// Test 1: every persistent store on its own
	fmt.Println("=== TEST 1: Persistent Stores ===")
	stores := map[string]interface{}{}
	for _, name := range backends.StoreNames() {
		store, _ := backends.Store(name)

		ids, err := store.ListStopIDs(ctx)
		if err != nil {
			fmt.Printf("%s: listing failed: %v\n", name, err)
			stores[name] = map[string]interface{}{"error": err.Error()}
			continue
		}

		stop, err := store.GetStop(ctx, stopID)
		fmt.Printf("%s: %d stops, lookup kind=%s\n", name, len(ids), transit.KindOf(err))
		stores[name] = map[string]interface{}{
			"stop_count": len(ids),
			"kind":       transit.KindOf(err).String(),
			"stop":       stop,
		}
	}
	output["stores"] = stores

	// Test 2: the resolver per scope, without auto save
	fmt.Println("\n=== TEST 2: Resolver ===")
	scopes := map[string]interface{}{}
	for _, scope := range []resolver.Scope{resolver.ScopeOffline, resolver.ScopeOnline, resolver.ScopeAll} {
		stop, err := backends.Resolver.FindStop(ctx, stopID, scope, resolver.AutoSaveDisabled)
		fmt.Printf("scope=%s: kind=%s\n", scope, transit.KindOf(err))
		scopes[scope.String()] = map[string]interface{}{"kind": transit.KindOf(err).String(), "stop": stop}
	}
	output["resolver"] = scopes

	// Save detailed output
	data, _ := json.MarshalIndent(output, "", "  ")
	os.WriteFile("debug_stores.json", data, 0644)

	fmt.Println("\nDebug complete. Check debug_stores.json for details.")
}
