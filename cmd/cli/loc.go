package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/spf13/cobra"

	"github.com/Lohith2005/AICodeAnalyzer/internal/loc"
)

func locCmd() *cobra.Command {
	var (
		repoURL string
		branch  string
		all     bool
	)

	cmd := &cobra.Command{
		Use:   "loc [path]",
		Short: "Count meaningful (non-blank, non-comment) lines",
		Long: `Counts lines that are non-blank and do not open with a comment marker
(//, #, /*, *, */). Pass a file or directory, or --repo to clone and
count a remote repository.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}

			if repoURL != "" {
				tmp, err := os.MkdirTemp("", "codecomplexity-loc-")
				if err != nil {
					return fmt.Errorf("failed to create temp dir: %w", err)
				}
				defer os.RemoveAll(tmp)

				opts := &git.CloneOptions{URL: repoURL, Depth: 1}
				if branch != "" {
					opts.ReferenceName = plumbing.NewBranchReferenceName(branch)
					opts.SingleBranch = true
				}
				if _, err := git.PlainClone(tmp, false, opts); err != nil {
					return fmt.Errorf("failed to clone %s: %w", repoURL, err)
				}
				root = tmp
			}

			info, err := os.Stat(root)
			if err != nil {
				return err
			}

			if !info.IsDir() {
				data, err := os.ReadFile(root)
				if err != nil {
					return err
				}
				fmt.Printf("%8d  %s\n", loc.Count(string(data)), root)
				return nil
			}

			type fileCount struct {
				path  string
				lines int
			}
			var files []fileCount
			total := 0

			err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if d.IsDir() {
					if d.Name() == ".git" || strings.HasPrefix(d.Name(), ".") && path != root {
						return filepath.SkipDir
					}
					return nil
				}
				if !all && !isSourceFile(path) {
					return nil
				}
				data, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				rel, _ := filepath.Rel(root, path)
				n := loc.Count(string(data))
				files = append(files, fileCount{path: rel, lines: n})
				total += n
				return nil
			})
			if err != nil {
				return err
			}

			sort.Slice(files, func(i, j int) bool { return files[i].lines > files[j].lines })
			for _, f := range files {
				fmt.Printf("%8d  %s\n", f.lines, f.path)
			}
			fmt.Printf("%8d  total (%d files)\n", total, len(files))
			return nil
		},
	}

	cmd.Flags().StringVarP(&repoURL, "repo", "r", "", "Git repository URL to clone and count")
	cmd.Flags().StringVarP(&branch, "branch", "b", "", "Branch to check out (default branch when empty)")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Count every file, not just recognized source extensions")

	return cmd
}

func isSourceFile(path string) bool {
	_, ok := extLanguages[strings.ToLower(filepath.Ext(path))]
	return ok
}
