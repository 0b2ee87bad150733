package cli

import (
	"github.com/spf13/cobra"

	"github.com/thedittmer/informant/internal/reader"
)

// maxCount keeps check's exit status below ExitFatal.
const maxCount = ExitFatal - 1

func (a *app) checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Count unread news, showing it if there is only one item",
		Long: `Count the unread news items. A single unread item is printed and marked
as read. The exit status is the number of unread items, so 0 means there
is nothing to read. The status is capped at 254 because 255 reports a
failure to fetch the feed or save the state file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			n, err := s.Check()
			if err != nil {
				return err
			}
			a.exitCode = min(n, maxCount)
			return nil
		},
	}
}

func (a *app) listCommand() *cobra.Command {
	var opts reader.ListOptions
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List news items, unread ones in bold",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			return s.List(opts)
		},
	}
	cmd.Flags().BoolVarP(&opts.Reverse, "reverse", "r", false, "list oldest items first")
	cmd.Flags().BoolVarP(&opts.Unread, "unread", "u", false, "only list unread items")
	return cmd
}

func (a *app) readCommand() *cobra.Command {
	var opts reader.ReadOptions
	cmd := &cobra.Command{
		Use:   "read [item]",
		Short: "Read news items and mark them as read",
		Long: `Without arguments, show every unread item oldest first, asking after each
one whether to continue. An item may be given by its index in "informant list"
or by its exact title. --all marks everything as read without showing it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.Item = args[0]
			}
			if err := opts.Validate(); err != nil {
				return err
			}
			s, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			return s.Read(opts)
		},
	}
	cmd.Flags().BoolVarP(&opts.All, "all", "a", false, "mark every item as read")
	return cmd
}
