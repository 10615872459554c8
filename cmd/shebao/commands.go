package main

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"shebao/internal/calculator"
	"shebao/internal/config"
	"shebao/internal/importer"
	"shebao/internal/model"
	"shebao/internal/service/excel"
	"shebao/internal/util"
)

var (
	calcYear   string
	calcCity   string
	exportYear string
	exportOut  string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "从 Excel 导入城市标准或员工工资",
}

var importCitiesCmd = &cobra.Command{
	Use:   "cities <file.xlsx>",
	Short: "导入城市社保标准",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImport(cmd, args[0], model.ImportCities)
	},
}

var importSalariesCmd = &cobra.Command{
	Use:   "salaries <file.xlsx>",
	Short: "导入员工月度工资",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImport(cmd, args[0], model.ImportSalaries)
	},
}

func runImport(cmd *cobra.Command, path string, kind model.ImportKind) error {
	ctx := cmd.Context()
	repo, err := openRepository(ctx)
	if err != nil {
		return err
	}
	defer repo.Close()

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("打开文件失败: %w", err)
	}
	defer f.Close()

	coordinator := importer.NewCoordinator(repo, logger.Named("importer"))
	var report *importer.Report
	if kind == model.ImportCities {
		report, err = coordinator.ImportCities(ctx, path, f)
	} else {
		report, err = coordinator.ImportSalaries(ctx, path, f)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "导入完成: %s (工作表 %s) 共 %d 行，成功 %d 行，跳过 %d 行，批次 %s\n",
		report.Filename, report.SheetName, report.TotalRows, report.ImportedRows, report.SkippedRows, report.BatchID)
	return nil
}

var calculateCmd = &cobra.Command{
	Use:   "calculate",
	Short: "计算指定年份的社保缴费并保存结果",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		repo, err := openRepository(ctx)
		if err != nil {
			return err
		}
		defer repo.Close()

		calc := calculator.NewCalculator(repo,
			calculator.WithDefaultCity(cfg.Business.DefaultCity),
			calculator.WithLogger(logger.Named("calculator")))
		results, err := calc.Calculate(ctx, calcYear, calcCity)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintln(w, "员工姓名\t年份\t平均工资\t缴费基数\t单位缴费金额\t")
		total := 0.0
		for _, r := range results {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t\n", r.EmployeeName, r.Year,
				util.FormatCurrency(r.AvgSalary), util.FormatCurrency(r.ContributionBase), util.FormatCurrency(r.CompanyFee))
			total += r.CompanyFee
		}
		fmt.Fprintf(w, "合计\t\t\t\t%s\t\n", util.FormatCurrency(calculator.Round2(total)))
		return w.Flush()
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "导出指定年份的计算结果为 Excel",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		repo, err := openRepository(ctx)
		if err != nil {
			return err
		}
		defer repo.Close()

		results, err := repo.ListResults(ctx, exportYear)
		if err != nil {
			return err
		}
		if len(results) == 0 {
			return model.NotFoundError("未找到 %s 年的计算结果", exportYear)
		}

		out := exportOut
		if out == "" {
			dir, err := config.EnsureDataDir(cfg)
			if err != nil {
				return err
			}
			out = filepath.Join(dir, "exports", excel.ResultsFilename(exportYear))
		}

		f, err := excel.ExportResults(results)
		if err != nil {
			return err
		}
		defer f.Close()
		buf, err := f.WriteToBuffer()
		if err != nil {
			return fmt.Errorf("生成文件失败: %w", err)
		}
		if err := util.WriteFileAtomic(out, buf.Bytes()); err != nil {
			return fmt.Errorf("保存文件失败: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "已导出 %d 条结果: %s\n", len(results), out)
		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "配置文件管理",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "生成默认 config.toml (已存在时不覆盖)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(cfgInfo.Path); err == nil {
			return fmt.Errorf("配置文件已存在: %s", cfgInfo.Path)
		}
		if err := config.SaveConfig(config.DefaultConfig(), cfgInfo.Path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "配置已写入: %s\n", cfgInfo.Path)
		return nil
	},
}

var citiesCmd = &cobra.Command{
	Use:   "cities",
	Short: "列出已导入的城市社保标准",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		repo, err := openRepository(ctx)
		if err != nil {
			return err
		}
		defer repo.Close()

		cities, err := repo.ListCities(ctx)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "城市\t年份\t基数下限\t基数上限\t缴费比例")
		for _, c := range cities {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", c.CityName, c.Year,
				util.FormatCurrency(c.BaseMin), util.FormatCurrency(c.BaseMax), util.FormatPercent(c.Rate))
		}
		return w.Flush()
	},
}
