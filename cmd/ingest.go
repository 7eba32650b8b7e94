package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nyayalabs/nyaya/db"
	"github.com/nyayalabs/nyaya/internal/retrieval"
)

// ingestBatchSize bounds how many passages are embedded and upserted
// per round trip.
const ingestBatchSize = 50

// corpusRecord is one line of the ingest file.
type corpusRecord struct {
	ID       string            `json:"id"`
	Text     string            `json:"text"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

var ingestCmd = &cobra.Command{
	Use:   "ingest <corpus.jsonl>",
	Short: "Embed statute passages and load them into the corpus table",
	Long: `Reads newline-delimited JSON records ({"id", "text", "metadata"}),
embeds each passage, and upserts it into the corpus table. Schema
migrations run first, so a fresh database works out of the box.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if err := db.Migrate(cfg.DatabaseURL); err != nil {
			return err
		}

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening corpus file: %w", err)
		}
		defer f.Close()

		ctx := cmd.Context()
		logger := newLogger()
		rt, err := newRuntime(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer rt.close()

		var (
			batch []retrieval.Passage
			total int
			line  int
		)
		flush := func() error {
			if len(batch) == 0 {
				return nil
			}
			vectors := make([][]float32, len(batch))
			for i, p := range batch {
				v, err := rt.client.Embed(ctx, p.Text)
				if err != nil {
					return fmt.Errorf("embedding passage %q: %w", p.ID, err)
				}
				vectors[i] = v
			}
			if err := rt.store.UpsertVectors(ctx, batch, vectors); err != nil {
				return err
			}
			total += len(batch)
			logger.Info("ingested batch", "count", len(batch), "total", total)
			batch = batch[:0]
			return nil
		}

		scanner := bufio.NewScanner(f)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			line++
			text := scanner.Bytes()
			if len(text) == 0 {
				continue
			}
			var rec corpusRecord
			if err := json.Unmarshal(text, &rec); err != nil {
				return fmt.Errorf("line %d: %w", line, err)
			}
			if rec.ID == "" || rec.Text == "" {
				return fmt.Errorf("line %d: id and text are required", line)
			}
			batch = append(batch, retrieval.Passage{
				ID:       rec.ID,
				Text:     rec.Text,
				Metadata: rec.Metadata,
			})
			if len(batch) >= ingestBatchSize {
				if err := flush(); err != nil {
					return err
				}
			}
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("reading corpus file: %w", err)
		}
		if err := flush(); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Ingested %d passages into %s\n", total, cfg.CorpusTable)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}
