package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jmgilman/go/fsutil"
	"github.com/jmgilman/go/fsutil/core"
)

// withHandle opens the backend, builds a handle for name and runs fn.
func (a *app) withHandle(cmd *cobra.Command, name string, fn func(*fsutil.Handle) error) error {
	fsys, err := openBackend(cmd.Context(), a.v)
	if err != nil {
		return err
	}
	h := fsutil.New(fsys, name)
	defer h.Unref()
	return fn(h)
}

func newPathCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "path NAME",
		Short: "Print the host path of NAME",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withHandle(cmd, args[0], func(h *fsutil.Handle) error {
				p, ok := h.Path()
				if !ok {
					return fmt.Errorf("%s has no host path", h)
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), p)
				return err
			})
		},
	}
}

func newCatCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cat NAME",
		Short: "Print NAME; prints nothing if it does not exist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withHandle(cmd, args[0], func(h *fsutil.Handle) error {
				data, _, err := fsutil.LoadContentsAllowNotFound(cmd.Context(), h)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			})
		},
	}
}

func newReplaceCmd(a *app) *cobra.Command {
	var (
		perm    string
		noSync  bool
		parents bool
	)
	cmd := &cobra.Command{
		Use:   "replace NAME",
		Short: "Atomically replace NAME with standard input",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := parsePerm(perm)
			if err != nil {
				return err
			}
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return err
			}
			opts := []fsutil.ReplaceOption{fsutil.WithPerm(mode)}
			if noSync {
				opts = append(opts, fsutil.WithoutSync())
			}
			if parents {
				opts = append(opts, fsutil.WithMkdirParents())
			}
			return a.withHandle(cmd, args[0], func(h *fsutil.Handle) error {
				return fsutil.ReplaceContents(cmd.Context(), h, data, opts...)
			})
		},
	}
	cmd.Flags().StringVar(&perm, "perm", "0644", "octal file mode of the new contents")
	cmd.Flags().BoolVar(&noSync, "no-sync", false, "skip syncing before the rename")
	cmd.Flags().BoolVarP(&parents, "parents", "p", false, "create missing parent directories")
	return cmd
}

// parsePerm reads an octal permission such as "600" or "0644".
func parsePerm(s string) (os.FileMode, error) {
	v, err := strconv.ParseUint(s, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid --perm %q: want octal permission bits", s)
	}
	if v&^0o777 != 0 {
		return 0, fmt.Errorf("invalid --perm %q: only permission bits 0-0777 are allowed", s)
	}
	return os.FileMode(v), nil
}

func newRmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm NAME",
		Short: "Remove NAME; succeeds if it does not exist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withHandle(cmd, args[0], func(h *fsutil.Handle) error {
				return fsutil.EnsureUnlinked(cmd.Context(), h)
			})
		},
	}
}

func newLsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ls [DIR]",
		Short: "List DIR",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return a.withHandle(cmd, dir, func(h *fsutil.Handle) error {
				e, err := fsutil.NewEnumerator(cmd.Context(), h)
				if err != nil {
					return err
				}
				defer func() { _ = e.Close() }()

				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				for {
					info, child, err := e.Iterate()
					if err != nil {
						return err
					}
					if info == nil {
						break
					}
					name := info.Name()
					if info.IsDir() {
						name += "/"
					}
					location := "-"
					if p, ok := child.Path(); ok {
						location = p
					}
					fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", info.Mode(), info.Size(), name, location)
				}
				return tw.Flush()
			})
		},
	}
}

func newSeedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed SRC_DIR",
		Short: "Copy a host directory into the backend root",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fsys, err := openBackend(cmd.Context(), a.v)
			if err != nil {
				return err
			}
			return core.CopyFS(os.DirFS(args[0]), fsys, ".")
		},
	}
}
