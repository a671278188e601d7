package cli

import (
	"fmt"
	"sync"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"molvec/config"
	"molvec/internal/adapter/cache"
	"molvec/internal/adapter/output"
	"molvec/internal/descriptor"
	"molvec/internal/port"
	"molvec/internal/usecase"
)

var (
	transformOutput     string
	transformSMILES     []string
	transformKind       string
	transformNJobs      int
	transformSaveVoc    string
	transformNoProgress bool
)

var transformCmd = &cobra.Command{
	Use:   "transform [patterns...]",
	Short: "Compute descriptor vectors for a list of SMILES",
	Long: `Transform computes one feature vector per molecule. Inputs are files
of one SMILES per line, given as paths or glob patterns, or literal
SMILES via --smiles. The output format follows the file extension
(.csv or .parquet).

Examples:
  molvec transform -o out.csv molecules.smi
  molvec transform -o out.parquet 'data/**/*.smi'
  molvec transform -o out.csv --smiles CCO --smiles 'c1ccccc1'`,
	RunE: runTransform,
}

func init() {
	rootCmd.AddCommand(transformCmd)
	transformCmd.Flags().StringVarP(&transformOutput, "output", "o", "", "output file (.csv or .parquet)")
	transformCmd.Flags().StringArrayVar(&transformSMILES, "smiles", nil, "literal SMILES input (repeatable)")
	transformCmd.Flags().StringVar(&transformKind, "descriptor", "", "descriptor kind override (coulomb, soap, mbtr, shingles, random)")
	transformCmd.Flags().IntVar(&transformNJobs, "n-jobs", 0, "worker pool size override")
	transformCmd.Flags().StringVar(&transformSaveVoc, "save-vocab", "", "write the shingles vocabulary to this JSON file after the run")
	transformCmd.Flags().BoolVar(&transformNoProgress, "no-progress", false, "disable the progress bar")
	transformCmd.MarkFlagRequired("output")
}

func runTransform(cmd *cobra.Command, args []string) error {
	if transformKind != "" {
		cfg.Descriptor.Kind = transformKind
	}
	if transformNJobs > 0 {
		cfg.NJobs = transformNJobs
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	smiles := transformSMILES
	if len(args) > 0 {
		loaded, err := usecase.LoadSMILES(args)
		if err != nil {
			return err
		}
		smiles = append(smiles, loaded...)
	}
	if len(smiles) == 0 {
		return fmt.Errorf("no input molecules: pass file patterns or --smiles")
	}

	if err := config.EnsureCacheDir(cfg.CacheDir); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	store, err := cache.NewBoltCache(config.CacheDBPath(cfg.CacheDir))
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}
	defer store.Close()

	desc, err := descriptor.New(cfg, store, logger)
	if err != nil {
		return err
	}
	vocabDesc, err := vocabTarget(desc, transformSaveVoc)
	if err != nil {
		return err
	}

	fmt.Printf("Transforming %d molecules (%s, row size %d, %d workers)...\n",
		len(smiles), cfg.Descriptor.Kind, desc.RowSize(), cfg.NJobs)

	progress := newProgressCallback(len(smiles))
	uc := usecase.NewTransformUseCase(desc, logger)
	result, err := uc.Run(smiles, progress)
	if err != nil {
		return err
	}

	if err := output.WriteFile(transformOutput, result.SMILES, result.Matrix); err != nil {
		return err
	}

	if vocabDesc != nil {
		if err := vocabDesc.Vocabulary().Save(transformSaveVoc); err != nil {
			return fmt.Errorf("failed to save vocabulary: %w", err)
		}
	}

	failed := result.Matrix.NumRows() - result.Matrix.NumSuccesses()
	fmt.Printf("\nTransformation complete:\n")
	fmt.Printf("  Molecules:  %d\n", result.Matrix.NumRows())
	fmt.Printf("  Succeeded:  %d\n", result.Matrix.NumSuccesses())
	fmt.Printf("  Failed:     %d\n", failed)
	fmt.Printf("  Elapsed:    %s\n", result.Elapsed.Round(1e6))
	fmt.Printf("\nOutput written to: %s\n", transformOutput)
	return nil
}

// vocabTarget resolves --save-vocab up front, before any batch work: the
// flag only makes sense for the shingles descriptor.
func vocabTarget(desc port.Descriptor, path string) (*descriptor.ShinglesDesc, error) {
	if path == "" {
		return nil, nil
	}
	sd, ok := desc.(*descriptor.ShinglesDesc)
	if !ok {
		return nil, fmt.Errorf("--save-vocab only applies to the shingles descriptor")
	}
	return sd, nil
}

// newProgressCallback wires the descriptor's best-effort progress
// reporting into a progress bar. Workers report concurrently, so the bar
// is guarded by a mutex.
func newProgressCallback(total int) func(done, total int) {
	if transformNoProgress {
		return nil
	}

	bar := progressbar.NewOptions(total,
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowBytes(false),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetDescription("[cyan]Transforming[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)

	var mu sync.Mutex
	return func(done, total int) {
		mu.Lock()
		defer mu.Unlock()
		bar.Set(done)
	}
}
