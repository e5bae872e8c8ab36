package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	h5imageextractor "github.com/gcioc/h5-image-extractor"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

var (
	filePath   string
	count      int
	assumeYes  bool
	outputFile string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "h5-image-extractor",
		Short: "Extract image datasets from HDF5 files",
		Long:  "A tool to scan HDF5 files for image datasets (arrays of rank 2 or higher) and extract them into a single stacked result",
		Run:   run,
	}

	rootCmd.Flags().StringVarP(&filePath, "file", "f", "", "HDF5 file to extract images from (required)")
	rootCmd.Flags().IntVarP(&count, "count", "n", 0, "Number of images to extract (0 = all, with confirmation)")
	rootCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Extract all images without asking for confirmation")
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write a markdown extraction report to this file")

	rootCmd.MarkFlagRequired("file")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("h5-image-extractor version %s\n", version)
		},
	}

	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	cyan := color.New(color.FgCyan)

	cyan.Println("\n🔬 HDF5 Image Extractor")
	cyan.Println("=======================")
	cyan.Println()

	opts := h5imageextractor.Options{
		FilePath: filePath,
		Count:    count,
		Logger:   &cliLogger{},
	}
	if !assumeYes {
		opts.Confirm = confirmPrompt
	}

	result, err := h5imageextractor.Run(opts)
	if err != nil {
		red.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	// Display extracted stats.
	cyan.Println("\n📊 Extraction Summary:")
	fmt.Printf("  • File: %s\n", result.Summary.FilePath)
	fmt.Printf("  • Images Found: %d\n", result.Summary.TotalImages)
	fmt.Printf("  • Images Extracted: %d\n", result.Images.Len())

	if result.Images.Uniform {
		fmt.Printf("  • Output Shape: %v\n", result.Images.Shape)
		fmt.Printf("  • Element Type: %s\n", result.Images.Elem)
	} else if result.Images.Len() > 0 {
		fmt.Printf("  • Output: %d individually shaped images\n", result.Images.Len())
	}

	// Write the markdown report, if requested.
	if outputFile != "" {
		green.Printf("\n💾 Writing report to %s... ", outputFile)
		err = os.WriteFile(outputFile, []byte(result.Markdown), 0644)
		if err != nil {
			red.Printf("✗\n")
			red.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		green.Println("✓")
	}

	green.Printf("\n✨ Successfully extracted %d image(s) from %s\n\n", result.Images.Len(), filePath)
}

// confirmPrompt asks on stdin before extracting every image in the file.
func confirmPrompt(total int) bool {
	fmt.Printf("Continue extracting all %d image(s)? (y/n): ", total)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	return strings.TrimSpace(strings.ToLower(answer)) == "y"
}

// cliLogger implements h5imageextractor.Logger with colored terminal output.
type cliLogger struct{}

func (l *cliLogger) Infof(format string, args ...any) {
	color.New(color.FgYellow).Printf(format+"\n", args...)
}

func (l *cliLogger) Warnf(format string, args ...any) {
	color.New(color.FgYellow).Printf("⚠ "+format+"\n", args...)
}

func (l *cliLogger) Errorf(format string, args ...any) {
	color.New(color.FgRed).Printf("✗ "+format+"\n", args...)
}
