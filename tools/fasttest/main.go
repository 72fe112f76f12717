package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/bcenhabil/barangaylink-system/internal/app"
	"github.com/bcenhabil/barangaylink-system/internal/business"
	"github.com/bcenhabil/barangaylink-system/internal/model"
	"github.com/bcenhabil/barangaylink-system/pkg/config"
	"github.com/bcenhabil/barangaylink-system/pkg/logger"
)

var (
	configPath   = flag.String("config", "./config/worker.yaml", "配置文件路径")
	testcasePath = flag.String("testcase", "./tools/fasttest/testcase/triage.json", "测试用例路径")
	skipInfra    = flag.Bool("skip-infra", false, "跳过 MySQL/Redis（仅测试评分逻辑）")
)

// TestCase 测试用例结构
type TestCase struct {
	Name           string              `json:"name"`
	Request        model.TriageRequest `json:"request"`
	ExpectPriority model.Tier          `json:"expect_priority"`
}

func main() {
	flag.Parse()

	fmt.Println("========================================")
	fmt.Println("  FastTest - 评分引擎快速测试工具")
	fmt.Println("========================================")

	// 1. 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("❌ Failed to load config: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✅ Config loaded: %s\n", cfg.App.Name)

	// 2. 加载测试用例
	testCases, err := loadTestCases(*testcasePath)
	if err != nil {
		fmt.Printf("❌ Failed to load test cases: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✅ Loaded %d test cases from %s\n", len(testCases), *testcasePath)

	// 3. 初始化服务（根据 skip-infra 参数决定）
	ctx := context.Background()
	if *skipInfra {
		fmt.Println("⚠️  Skip-infra mode: MySQL and Redis disabled")
		cfg.MySQL.DSN = ""
		cfg.Redis.Addr = ""
	}
	application, cleanup, err := app.InitializeApp(ctx, cfg, logger.NewNop())
	if err != nil {
		fmt.Printf("❌ Failed to initialize app: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	info := application.Service.ModelInfo()
	fmt.Printf("✅ Engine ready: classifier=%s, taxonomy=%s\n", info.ClassifierStatus, info.TaxonomyVersion)

	// 4. 执行测试用例
	fmt.Println("\n========================================")
	fmt.Println("  Running Test Cases")
	fmt.Println("========================================")

	successCount := 0
	failureCount := 0

	for i, tc := range testCases {
		fmt.Printf("\n[Test %d/%d] %s\n", i+1, len(testCases), tc.Name)
		fmt.Println("----------------------------------------")

		startTime := time.Now()
		err := runTestCase(ctx, application.Service, tc)
		duration := time.Since(startTime)

		if err != nil {
			fmt.Printf("❌ FAILED: %v\n", err)
			failureCount++
		} else {
			fmt.Printf("✅ PASSED\n")
			successCount++
		}
		fmt.Printf("⏱️  Duration: %v\n", duration)
	}

	// 5. 输出测试汇总
	fmt.Println("\n========================================")
	fmt.Println("  Test Summary")
	fmt.Println("========================================")
	fmt.Printf("Total: %d\n", len(testCases))
	fmt.Printf("Passed: %d ✅\n", successCount)
	fmt.Printf("Failed: %d ❌\n", failureCount)

	if failureCount > 0 {
		cleanup()
		os.Exit(1)
	}
}

// loadTestCases 从 JSON 文件加载测试用例
func loadTestCases(path string) ([]TestCase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read testcase file: %w", err)
	}

	var testCases []TestCase
	if err := json.Unmarshal(data, &testCases); err != nil {
		return nil, fmt.Errorf("failed to unmarshal testcase: %w", err)
	}

	return testCases, nil
}

// runTestCase 评分并核对档位
func runTestCase(ctx context.Context, service *business.TriageService, tc TestCase) error {
	result, err := service.Prioritize(ctx, tc.Request)
	if err != nil {
		return fmt.Errorf("prioritize failed: %w", err)
	}

	fmt.Printf("  Priority=%s Score=%.3f Rule=%.3f Fallback=%v\n",
		result.Priority, result.Score, result.RuleScore, result.MLFallback)
	fmt.Printf("  Reason: %s\n", result.Reason())
	if result.SuggestedCategory != nil {
		fmt.Printf("  Suggested: %s\n", *result.SuggestedCategory)
	}

	if tc.ExpectPriority != "" && result.Priority != tc.ExpectPriority {
		return fmt.Errorf("expected %s, got %s", tc.ExpectPriority, result.Priority)
	}
	return nil
}
