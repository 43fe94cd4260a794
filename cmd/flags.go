package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gnames/gntnrs/internal/iofs"
	gntnrs "github.com/gnames/gntnrs/pkg"
	"github.com/spf13/cobra"
)

func versionFlag(cmd *cobra.Command) {
	hasVersionFlag, _ := cmd.Flags().GetBool("version")
	if hasVersionFlag {
		fmt.Printf("\nversion: %s\nbuild: %s\n\n", gntnrs.Version, gntnrs.Build)
		os.Exit(0)
	}
}

// readNames collects names from arguments and, when path is given, from a
// file with one name per line. Path "-" reads names from STDIN.
func readNames(args []string, path string) ([]string, error) {
	res := make([]string, 0, len(args))
	for _, v := range args {
		if v = strings.TrimSpace(v); v != "" {
			res = append(res, v)
		}
	}
	if path == "" {
		return res, nil
	}

	f := os.Stdin
	if path != "-" {
		var err error
		if f, err = os.Open(path); err != nil {
			return nil, iofs.ReadFileError(path, err)
		}
		defer f.Close()
	}

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			res = append(res, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, iofs.ReadFileError(path, err)
	}
	return res, nil
}

// parseIDs converts taxon id arguments to numbers.
func parseIDs(args []string) ([]int64, error) {
	res := make([]int64, 0, len(args))
	for _, v := range args {
		v = strings.TrimPrefix(strings.TrimSpace(v), "ott")
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid taxon id %q: %w", v, err)
		}
		res = append(res, id)
	}
	return res, nil
}
