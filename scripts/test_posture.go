package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/fosrl/posture/internal/osquery"
	"github.com/fosrl/posture/internal/platform"
	"github.com/fosrl/posture/internal/posture"
)

// Runs every check against the local osqueryi and dumps what came back,
// including the raw rows, for debugging query tables on a new host.
func main() {
	engine := osquery.DefaultEngine
	if len(os.Args) > 1 {
		engine = os.Args[1]
	}

	ctx := context.Background()
	client := osquery.NewClient(engine)
	host := platform.Detect()
	profile := posture.ProfileFor(host)

	fmt.Printf("=== Raw rows (%s) ===\n", host)
	fmt.Println()

	queries := []string{profile.DiskEncryption.Query}
	queries = append(queries, profile.Antivirus.Queries...)
	queries = append(queries, profile.ScreenLock.Query)

	for _, q := range queries {
		result, err := client.Query(ctx, q)
		fmt.Printf("  %s\n", q)
		if err != nil {
			fmt.Printf("    error: %v\n", err)
			continue
		}
		fmt.Printf("    %d row(s)\n", len(result))
	}
	fmt.Println()

	report := posture.NewChecker(osquery.NewRunner(client, 0), host).Run(ctx, posture.RunOptions{})

	fmt.Println("=== JSON Output ===")
	jsonData, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling JSON: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(jsonData))
}
