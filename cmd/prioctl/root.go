package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bcenhabil/barangaylink-system/internal/business"
	"github.com/bcenhabil/barangaylink-system/pkg/config"
	"github.com/bcenhabil/barangaylink-system/pkg/logger"
)

// rootOptions 全局参数
type rootOptions struct {
	configFile     string
	classifierPath string
	taxonomyPath   string
	logLevel       string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "prioctl",
		Short: "Score community help requests and forecast disaster resources offline",
		Long: `prioctl runs the prioritization engine in-process, without the HTTP server
or the queue worker. Use it to inspect how a request is scored, to check a
taxonomy override before rolling it out, or to enqueue a job for the worker.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file (worker/apiserver yaml); engine defaults are used when empty")
	rootCmd.PersistentFlags().StringVar(&opts.classifierPath, "classifier", "", "classifier artefact path, overrides engine.classifier_path")
	rootCmd.PersistentFlags().StringVar(&opts.taxonomyPath, "taxonomy", "", "taxonomy override yaml, overrides engine.taxonomy_path")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "error", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		newPrioritizeCmd(opts),
		newBatchCmd(opts),
		newForecastCmd(opts),
		newModelInfoCmd(opts),
		newEnqueueCmd(opts),
		newRecordsCmd(opts),
		newWatchCmd(opts),
	)
	return rootCmd
}

// loadConfig 读取配置文件并应用命令行覆盖
func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg := &config.Config{
		App: config.AppConfig{
			Name:         business.ServiceName,
			ModelVersion: business.DefaultModelVersion,
		},
	}
	if o.configFile != "" {
		loaded, err := config.Load(o.configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if o.classifierPath != "" {
		cfg.Engine.ClassifierPath = o.classifierPath
	}
	if o.taxonomyPath != "" {
		cfg.Engine.TaxonomyPath = o.taxonomyPath
	}
	return cfg, nil
}

// newService 组装进程内评分服务（不落库、不通知）
func (o *rootOptions) newService(ctx context.Context) (*business.TriageService, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	log, err := logger.NewZapLogger(o.logLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	service, _, err := business.NewTriageServiceFromConfig(ctx, cfg, log)
	return service, err
}

// readInput 从文件或 stdin（"-"）读取 JSON
func readInput(cmd *cobra.Command, path string, v interface{}) error {
	var r io.Reader = cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}
	if err := json.NewDecoder(r).Decode(v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}

// printJSON 缩进输出
func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
