package cli

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/haeun-lim/haru/internal/storage"
)

// statusJSON is the JSON output structure for the status command.
type statusJSON struct {
	Version       string              `json:"version"`
	DatabasePath  string              `json:"database_path"`
	DatabaseSize  int64               `json:"database_size_bytes"`
	TotalEvents   int64               `json:"total_events"`
	TotalNotified int64               `json:"total_notified"`
	FirstDate     string              `json:"first_date,omitempty"`
	LastDate      string              `json:"last_date,omitempty"`
	Categories    []categoryCountJSON `json:"categories"`
}

type categoryCountJSON struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// Execute implements the go-flags Commander interface for StatusCommand.
func (c *StatusCommand) Execute(args []string) error {
	cfg, err := loadConfig(c.globals)
	if err != nil {
		return err
	}

	dbPath, err := cfg.DatabasePath()
	if err != nil {
		return err
	}

	store, db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()

	return c.executeWithStore(store, db, dbPath)
}

// executeWithStore runs status against a provided store and db (for testing).
func (c *StatusCommand) executeWithStore(store storage.Store, db *sql.DB, dbPath string) error {
	stats, err := store.GetStats(context.Background())
	if err != nil {
		return fmt.Errorf("get stats: %w", err)
	}

	dbSize := getDatabaseSize(db, dbPath)

	if c.globals != nil && c.globals.JSON {
		return c.printStatusJSON(stats, dbPath, dbSize)
	}
	return c.printStatusHuman(stats, dbPath, dbSize)
}

func (c *StatusCommand) printStatusHuman(stats *storage.Stats, dbPath string, dbSize int64) error {
	fmt.Println("haru Status")
	fmt.Println("===========")
	fmt.Printf("Version:       %s\n", c.version)
	fmt.Printf("Database:      %s (%s)\n", dbPath, formatBytes(dbSize))
	fmt.Printf("Events:        %s\n", formatNumber(stats.TotalEvents))

	// Notified with percentage
	if stats.TotalEvents > 0 {
		pct := float64(stats.TotalNotified) / float64(stats.TotalEvents) * 100
		fmt.Printf("Notified:      %s (%.1f%%)\n", formatNumber(stats.TotalNotified), pct)
	} else {
		fmt.Printf("Notified:      %s\n", formatNumber(stats.TotalNotified))
	}

	if stats.TotalEvents > 0 {
		fmt.Printf("First event:   %s\n", stats.FirstDate)
		fmt.Printf("Last event:    %s\n", stats.LastDate)
	}

	if len(stats.Categories) > 0 {
		fmt.Println()
		fmt.Println("Categories:")
		for _, cc := range stats.Categories {
			fmt.Printf("  %-20s %s\n", cc.Category, formatNumber(cc.Count))
		}
	}

	return nil
}

func (c *StatusCommand) printStatusJSON(stats *storage.Stats, dbPath string, dbSize int64) error {
	out := statusJSON{
		Version:       c.version,
		DatabasePath:  dbPath,
		DatabaseSize:  dbSize,
		TotalEvents:   stats.TotalEvents,
		TotalNotified: stats.TotalNotified,
		FirstDate:     stats.FirstDate,
		LastDate:      stats.LastDate,
		Categories:    make([]categoryCountJSON, len(stats.Categories)),
	}

	for i, cc := range stats.Categories {
		out.Categories[i] = categoryCountJSON{Category: cc.Category, Count: cc.Count}
	}

	return printJSON(out)
}

// getDatabaseSize returns the database file size in bytes.
// For on-disk databases, it uses os.Stat. For in-memory databases,
// it queries page_count * page_size.
func getDatabaseSize(db *sql.DB, dbPath string) int64 {
	// Try file stat first
	if info, err := os.Stat(dbPath); err == nil {
		return info.Size()
	}

	// Fallback: query SQLite for in-memory or unavailable file
	var pageCount, pageSize int64
	if err := db.QueryRow("PRAGMA page_count").Scan(&pageCount); err != nil {
		return 0
	}
	if err := db.QueryRow("PRAGMA page_size").Scan(&pageSize); err != nil {
		return 0
	}
	return pageCount * pageSize
}

// formatBytes formats a byte count into a human-readable string.
func formatBytes(b int64) string {
	switch {
	case b >= 1<<30:
		return fmt.Sprintf("%.1f GB", float64(b)/float64(1<<30))
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/float64(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/float64(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

// formatNumber formats an int64 with comma separators.
func formatNumber(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
		if len(s) > remainder {
			result.WriteString(",")
		}
	}
	for i := remainder; i < len(s); i += 3 {
		if i > remainder {
			result.WriteString(",")
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}
