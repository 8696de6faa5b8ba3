package iocache

import (
	"fmt"

	"github.com/miradorhq/mirador/schema"
)

// PrintSnapshotStatus prints snapshot store status information.
func PrintSnapshotStatus(status schema.SnapshotStatus) {
	fmt.Printf("Snapshot Backend: %s\n", status.Backend)
	if status.Backend == schema.NoneBackend {
		fmt.Println("Snapshot recording is disabled")
		return
	}
	if status.Location != "" {
		fmt.Printf("Location: %s\n", status.Location)
	}
	fmt.Printf("Total Runs: %d\n", status.TotalRuns)
	fmt.Printf("Total KPI Values: %d\n", status.TotalValues)
	if status.TotalRuns > 0 {
		fmt.Printf("Last Run: %s\n", status.LastRunAt.Format("2006-01-02 15:04:05"))
	}
	if status.SizeBytes > 0 {
		fmt.Printf("Database Size: %d bytes\n", status.SizeBytes)
	}
}
