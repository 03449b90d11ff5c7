package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Lohith2005/AICodeAnalyzer/internal/analysis"
	"github.com/Lohith2005/AICodeAnalyzer/internal/config"
	"github.com/Lohith2005/AICodeAnalyzer/internal/llm"
)

func analyzeCmd() *cobra.Command {
	var language string

	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Estimate the complexity of a source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			code, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read file: %w", err)
			}

			if language == "" {
				language = languageFromExt(args[0])
			}

			client, err := llm.NewClientFromConfig(cfg)
			if err != nil {
				return err
			}

			// One-shot run: throwaway store, no cooldown.
			svc := analysis.NewService(analysis.NewMemoryStore(), client, 0)

			result, err := svc.Analyze(ctx, string(code), language)
			if err != nil {
				return err
			}

			fmt.Printf("File:             %s\n", args[0])
			fmt.Printf("Language:         %s\n", language)
			fmt.Printf("Meaningful lines: %d\n", result.LinesOfCode)
			fmt.Printf("Time complexity:  %s\n", result.TimeComplexity)
			fmt.Printf("Space complexity: %s\n", result.SpaceComplexity)
			if result.Explanation != "" {
				fmt.Printf("\n%s\n", result.Explanation)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&language, "language", "l", "", "Language tag sent to the model (inferred from extension when empty)")

	return cmd
}

var extLanguages = map[string]string{
	".go":    "go",
	".py":    "python",
	".js":    "javascript",
	".ts":    "typescript",
	".java":  "java",
	".c":     "c",
	".cpp":   "cpp",
	".cs":    "csharp",
	".rb":    "ruby",
	".rs":    "rust",
	".php":   "php",
	".kt":    "kotlin",
	".swift": "swift",
}

func languageFromExt(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if lang, ok := extLanguages[ext]; ok {
		return lang
	}
	return "plaintext"
}
