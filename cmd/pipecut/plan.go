package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/pipecut/internal/engine"
	"github.com/piwi3910/pipecut/internal/export"
	"github.com/piwi3910/pipecut/internal/importer"
	"github.com/piwi3910/pipecut/internal/inventory"
	"github.com/piwi3910/pipecut/internal/model"
)

func newPlanCmd() *cobra.Command {
	planCmd := &cobra.Command{
		Use:   "plan",
		Short: "Compute a cutting plan",
	}
	planCmd.AddCommand(newPlanSingleCmd(), newPlanMultiCmd())
	return planCmd
}

func newPlanMultiCmd() *cobra.Command {
	var (
		cutsSpec     string
		inputPath    string
		apply        bool
		pricePerPipe float64
		pdfPath      string
		xlsxPath     string
		dxfPath      string
		labelsPath   string
	)

	cmd := &cobra.Command{
		Use:   "multi",
		Short: "Pack cuts of mixed lengths onto as few pipes as possible",
		Long:  "multi packs a list of cut lengths onto pipes using first-fit-decreasing, preferring saved leftovers over fresh raw pipes. Without --apply the inventory is not modified.",
		Example: `  pipecut plan multi --cuts 868x3,450x4
  pipecut plan multi --input cuts.csv --pdf plan.pdf --apply`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reqs, err := loadRequirements(cmd.ErrOrStderr(), cutsSpec, inputPath)
			if err != nil {
				return err
			}
			if len(reqs) == 0 {
				return fmt.Errorf("no cuts given: use --cuts or --input")
			}

			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			leftovers, err := a.store.GetLeftoversSorted(cmd.Context())
			if err != nil {
				return fmt.Errorf("load leftovers: %w", err)
			}

			result, muts := engine.NewPacker(a.cfg.Settings).Pack(reqs, leftovers)
			printMultiResult(cmd.OutOrStdout(), result)

			est := model.EstimateRawPipes(reqs, a.cfg.Settings, pricePerPipe)
			if est.PipesNeededMin > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Lower bound without leftovers: %d raw pipe(s) (%.2f exact)\n",
					est.PipesNeededMin, est.PipesNeededExact)
				if pricePerPipe > 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "Estimated material cost: %.2f\n", est.EstimatedCost)
				}
			}

			if pdfPath != "" {
				if err := export.ExportPDF(pdfPath, result, a.cfg.Settings); err != nil {
					return fmt.Errorf("export pdf: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", pdfPath)
			}
			if xlsxPath != "" {
				if err := export.ExportXLSX(xlsxPath, result); err != nil {
					return fmt.Errorf("export xlsx: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", xlsxPath)
			}
			if dxfPath != "" {
				if err := export.ExportDXF(dxfPath, result, a.cfg.Settings); err != nil {
					return fmt.Errorf("export dxf: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", dxfPath)
			}
			if labelsPath != "" {
				if err := export.ExportLabels(labelsPath, result, a.cfg.Settings); err != nil {
					return fmt.Errorf("export labels: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", labelsPath)
			}

			return finishPlan(cmd, a, muts, apply)
		},
	}

	cmd.Flags().StringVar(&cutsSpec, "cuts", "", "cut list as LENGTHxQTY pairs, e.g. 868x3,450x4")
	cmd.Flags().StringVar(&inputPath, "input", "", "read the cut list from a CSV or Excel file")
	cmd.Flags().BoolVar(&apply, "apply", false, "write the resulting inventory changes to the store")
	cmd.Flags().Float64Var(&pricePerPipe, "price", 0, "price per raw pipe, enables a cost estimate")
	cmd.Flags().StringVar(&pdfPath, "pdf", "", "write a printable plan to this PDF file")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "write the plan table to this Excel file")
	cmd.Flags().StringVar(&dxfPath, "dxf", "", "write the cut geometry to this DXF file")
	cmd.Flags().StringVar(&labelsPath, "labels", "", "write QR labels for saved offcuts to this PDF file")
	return cmd
}

func newPlanSingleCmd() *cobra.Command {
	var (
		length   float64
		quantity int
		raw      float64
		apply    bool
		pdfPath  string
		xlsxPath string
	)

	cmd := &cobra.Command{
		Use:   "single",
		Short: "Cut one length repeatedly, draining leftovers first",
		Example: `  pipecut plan single --length 1200 --quantity 8
  pipecut plan single --length 1200 --quantity 8 --raw 5000 --apply`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			rawLength := raw
			if rawLength == 0 {
				rawLength = a.cfg.Settings.RawLength
			}

			leftovers, err := a.store.GetLeftoversSorted(cmd.Context())
			if err != nil {
				return fmt.Errorf("load leftovers: %w", err)
			}

			result, muts := engine.NewAllocator(a.cfg.Settings).Allocate(rawLength, length, quantity, leftovers)
			printSingleResult(cmd.OutOrStdout(), result)

			if pdfPath != "" || xlsxPath != "" {
				view := singlePlanView(result, rawLength, a.cfg.Settings)
				if pdfPath != "" {
					if err := export.ExportPDF(pdfPath, view, a.cfg.Settings); err != nil {
						return fmt.Errorf("export pdf: %w", err)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", pdfPath)
				}
				if xlsxPath != "" {
					if err := export.ExportXLSX(xlsxPath, view); err != nil {
						return fmt.Errorf("export xlsx: %w", err)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", xlsxPath)
				}
			}

			return finishPlan(cmd, a, muts, apply)
		},
	}

	cmd.Flags().Float64Var(&length, "length", 0, "cut length in mm")
	cmd.Flags().IntVar(&quantity, "quantity", 0, "number of pieces")
	cmd.Flags().Float64Var(&raw, "raw", 0, "raw pipe length in mm (default from config)")
	cmd.Flags().BoolVar(&apply, "apply", false, "write the resulting inventory changes to the store")
	cmd.Flags().StringVar(&pdfPath, "pdf", "", "write a printable plan to this PDF file")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "write the plan table to this Excel file")
	_ = cmd.MarkFlagRequired("length")
	_ = cmd.MarkFlagRequired("quantity")
	return cmd
}

// finishPlan applies or reports the pending inventory mutations.
func finishPlan(cmd *cobra.Command, a *app, muts model.InventoryMutations, apply bool) error {
	out := cmd.OutOrStdout()
	if muts.Empty() {
		return nil
	}
	if !apply {
		fmt.Fprintf(out, "\nDry run: %d leftover(s) would be consumed, %d saved. Re-run with --apply to update the inventory.\n",
			len(muts.DeleteIDs), len(muts.InsertLengths))
		return nil
	}
	if err := inventory.ApplyMutations(cmd.Context(), a.store, muts); err != nil {
		return fmt.Errorf("apply inventory changes: %w", err)
	}
	fmt.Fprintf(out, "\nInventory updated: %d leftover(s) consumed, %d saved.\n",
		len(muts.DeleteIDs), len(muts.InsertLengths))
	return nil
}

// loadRequirements resolves the cut list from --cuts or --input.
// Import warnings go to warnOut; import errors fail the command.
func loadRequirements(warnOut io.Writer, cutsSpec, inputPath string) ([]model.CutRequirement, error) {
	if cutsSpec != "" && inputPath != "" {
		return nil, fmt.Errorf("--cuts and --input are mutually exclusive")
	}
	if cutsSpec != "" {
		return parseCutsSpec(cutsSpec)
	}
	if inputPath == "" {
		return nil, nil
	}

	var res importer.ImportResult
	if strings.HasSuffix(strings.ToLower(inputPath), ".xlsx") {
		res = importer.ImportExcel(inputPath)
	} else {
		res = importer.ImportCSV(inputPath)
	}
	for _, w := range res.Warnings {
		fmt.Fprintf(warnOut, "warning: %s\n", w)
	}
	if len(res.Errors) > 0 {
		return nil, fmt.Errorf("import %s: %s", inputPath, strings.Join(res.Errors, "; "))
	}
	return res.Requirements, nil
}

// parseCutsSpec parses a comma separated list of LENGTHxQTY pairs.
// The quantity defaults to 1 when omitted.
func parseCutsSpec(spec string) ([]model.CutRequirement, error) {
	var reqs []model.CutRequirement
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		lengthStr, qtyStr, hasQty := strings.Cut(strings.ToLower(part), "x")
		length, err := strconv.ParseFloat(strings.TrimSpace(lengthStr), 64)
		if err != nil || length <= 0 {
			return nil, fmt.Errorf("invalid cut length %q in %q", lengthStr, part)
		}

		qty := 1
		if hasQty {
			qty, err = strconv.Atoi(strings.TrimSpace(qtyStr))
			if err != nil || qty <= 0 {
				return nil, fmt.Errorf("invalid quantity %q in %q", qtyStr, part)
			}
		}

		reqs = append(reqs, model.CutRequirement{Length: length, Quantity: qty})
	}
	return reqs, nil
}

// singlePlanView reshapes a single-size plan into the per-pipe form the
// exporters render, one row per consumed source.
func singlePlanView(result model.SinglePlanResult, rawLength float64, settings model.PlanSettings) model.MultiPlanResult {
	view := model.MultiPlanResult{
		TotalPipes: len(result.Segments),
		TotalUsed:  result.MaterialUsedInclKerf,
		TotalKerf:  result.TotalKerf,
		RawLength:  rawLength,
	}
	for i, s := range result.Segments {
		cuts := make([]float64, s.Pieces)
		for c := range cuts {
			cuts[c] = s.CutLength
		}
		view.Pipes = append(view.Pipes, model.PipeResult{
			PipeNumber: i + 1,
			PipeLabel:  s.Source,
			Cuts:       cuts,
			NumCuts:    s.Pieces,
			Kerf:       model.Round2(settings.Kerf * float64(s.Pieces)),
			Used:       model.Round2(s.SourceLength - s.Remaining),
			Scrap:      s.Remaining,
			ScrapClass: model.ClassifyScrap(s.Remaining, settings.UsableThreshold),
			IsLeftover: strings.HasPrefix(s.Source, "Leftover"),
		})
		view.TotalScrap = model.Round2(view.TotalScrap + s.Remaining)
	}
	return view
}

func printMultiResult(w io.Writer, result model.MultiPlanResult) {
	if result.TotalPipes == 0 {
		fmt.Fprintln(w, "Nothing to cut.")
		return
	}

	for _, p := range result.Pipes {
		cuts := make([]string, len(p.Cuts))
		for i, c := range p.Cuts {
			cuts[i] = fmt.Sprintf("%.0f", c)
		}
		fmt.Fprintf(w, "Pipe %d  %-22s cuts: %-30s scrap: %8.2f mm (%s)\n",
			p.PipeNumber, p.PipeLabel, strings.Join(cuts, ", "), p.Scrap, p.ScrapClass)
	}

	fmt.Fprintf(w, "\nPipes: %d   Used: %.2f mm   Kerf: %.2f mm   Scrap: %.2f mm\n",
		result.TotalPipes, result.TotalUsed, result.TotalKerf, result.TotalScrap)
	if result.LastPipeOverLimit {
		fmt.Fprintln(w, "Note: the last pipe ends with more scrap than the configured limit.")
	}
}

func printSingleResult(w io.Writer, result model.SinglePlanResult) {
	if result.PiecesProduced == 0 && len(result.Segments) == 0 {
		fmt.Fprintln(w, "Nothing to cut.")
		return
	}

	for _, s := range result.Segments {
		fmt.Fprintf(w, "%-22s %d x %.2f mm, remaining %.2f mm\n",
			s.Source, s.Pieces, s.CutLength, s.Remaining)
	}

	fmt.Fprintf(w, "\nPieces: %d   Material: %.2f mm (%.2f mm incl. kerf)   Kerf: %.2f mm\n",
		result.PiecesProduced, result.MaterialUsed, result.MaterialUsedInclKerf, result.TotalKerf)
	for _, s := range result.ScrapSaved {
		fmt.Fprintf(w, "Saved leftover: %.2f mm\n", s)
	}
	if result.SuggestedRaw > 0 {
		fmt.Fprintf(w, "Suggested raw length for a follow-up plan: %.2f mm\n", result.SuggestedRaw)
	}
}
