package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shouni/go-prompt-reel/pkg/domain"
)

var (
	listCategory    string
	actionIntensity int
)

// listCmd は、カタログのアセットを一覧表示するのだ。
var listCmd = &cobra.Command{
	Use:       "list characters|scenes",
	Short:     "カタログのアセットを一覧表示するのだ。",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"characters", "scenes"},
	RunE:      listCommand,
}

// categoriesCmd は、アセットに含まれるカテゴリを表示するのだ。
var categoriesCmd = &cobra.Command{
	Use:   "categories characters|scenes",
	Short: "利用可能なカテゴリを表示するのだ。",
	Args:  cobra.ExactArgs(1),
	RunE:  categoriesCommand,
}

// actionsCmd は、強度ごとのアクションを表示するのだ。
var actionsCmd = &cobra.Command{
	Use:   "actions",
	Short: "指定した強度のアクションを表示するのだ。",
	Args:  cobra.NoArgs,
	RunE:  actionsCommand,
}

// targetsCmd は、レンダーターゲットの一覧を表示するのだ。
var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "レンダーターゲットの一覧を表示するのだ。",
	Args:  cobra.NoArgs,
	RunE:  targetsCommand,
}

func init() {
	listCmd.Flags().StringVarP(&listCategory, "category", "c", domain.CategoryAll, "表示するカテゴリなのだ。")
	actionsCmd.Flags().IntVarP(&actionIntensity, "intensity", "i", 1, "アクションの強度 (1-10) なのだ。")
}

func listCommand(cmd *cobra.Command, args []string) error {
	kind, err := domain.ParseKind(args[0])
	if err != nil {
		return err
	}
	assets := domain.FilterByCategory(appCtx.Catalog.All(kind), strings.ToUpper(listCategory))

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tCUSTOM")
	for i := range assets {
		a := &assets[i]
		custom := ""
		if a.IsCustom {
			custom = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", a.ID, a.Name, domain.Classify(a), custom)
	}
	return w.Flush()
}

func categoriesCommand(cmd *cobra.Command, args []string) error {
	kind, err := domain.ParseKind(args[0])
	if err != nil {
		return err
	}
	for _, code := range domain.AvailableCategories(appCtx.Catalog.All(kind)) {
		fmt.Fprintf(cmd.OutOrStdout(), "%-6s %s\n", code, domain.CategoryLabel(code))
	}
	return nil
}

func actionsCommand(cmd *cobra.Command, args []string) error {
	if actionIntensity < 1 || actionIntensity > 10 {
		return fmt.Errorf("--intensity は 1 から 10 で指定してほしいのだ: %d", actionIntensity)
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Lvl %d: %s\n", actionIntensity, domain.IntensityLabel(actionIntensity))

	actions := domain.FilterByIntensity(appCtx.Reel.Actions, actionIntensity)
	if len(actions) == 0 {
		fmt.Fprintf(out, "No Actions Found (Level %d)\n", actionIntensity)
		return nil
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, a := range actions {
		fmt.Fprintf(w, "%s\t%s\t%s\n", a.ID, a.Name, a.Desc)
	}
	return w.Flush()
}

func targetsCommand(cmd *cobra.Command, args []string) error {
	registry := appCtx.Composer.Registry()
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tLABEL\tFLAGS\tSUFFIX")
	for _, t := range registry.Targets() {
		flags := ""
		if registry.FlagCapable(t.ID) {
			flags = "cref/sref"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", t.ID, t.Label, flags, t.Suffix)
	}
	return w.Flush()
}
