package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"

	"tcm-go/internal/app"
	"tcm-go/internal/config"
	"tcm-go/internal/encryption"
	"tcm-go/internal/model"
	"tcm-go/internal/opml"
	"tcm-go/internal/tcm"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newApp reads the config and creates a TCMApp. The caller must defer app.Close().
// operation identifies the CLI command being run (e.g. "CaseAdd", "BatchCreate").
func newApp(operation string) (*app.TCMApp, error) {
	cfg, err := readConfig()
	if err != nil {
		return nil, err
	}

	a, err := app.NewTCMApp(cfg, operation)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	return a, nil
}

func readConfig() (*config.Config, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return cfg, nil
}

// resolveGroup accepts either a group ID or a group name and returns the group.
func resolveGroup(svc *tcm.Service, ref string) (*model.Group, error) {
	g, err := svc.Groups().Get(ref)
	if err != nil {
		return nil, err
	}
	if g != nil {
		return g, nil
	}
	for _, candidate := range svc.Groups().List() {
		if candidate.Name == ref {
			c := candidate
			return &c, nil
		}
	}
	return nil, fmt.Errorf("group not found: %s", ref)
}

// readPassphrase prompts on stderr and reads a passphrase without echo.
func readPassphrase(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	pass, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading passphrase: %w", err)
	}
	return string(pass), nil
}

// displayLines renders a marker-encoded multi-line field one line per row.
func displayLines(indent, text string) {
	for _, line := range tcm.SplitLines(text) {
		fmt.Printf("%s%s\n", indent, line)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tcm",
	Short: "Local test case manager",
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg := config.NewConfig(defaults["base_dir"])

		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Base Dir: %s\n", defaults["base_dir"])
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("Base Dir:  %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:   %s\n", cfg.LogDir)
		fmt.Printf("Store:     %s (%s)\n", cfg.Store.Type, cfg.Store.DataDir)
		fmt.Printf("Vault:     %s (%s)\n", cfg.Vault.Type, cfg.Vault.Name)
		return nil
	},
}

// keys command
var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Manage encryption keys",
}

var keysInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate the snapshot encryption key pair",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := readConfig()
		if err != nil {
			return err
		}

		enc, err := encryption.NewEncryptorFromConfig(cfg.Encryption)
		if err != nil {
			return fmt.Errorf("creating encryptor: %w", err)
		}

		if enc.IsConfigured() {
			return fmt.Errorf("keys already exist at %s", cfg.Encryption.PublicKeyPath)
		}

		pass, err := readPassphrase("Passphrase for new private key: ")
		if err != nil {
			return err
		}
		confirm, err := readPassphrase("Confirm passphrase: ")
		if err != nil {
			return err
		}
		if pass != confirm {
			return fmt.Errorf("passphrases do not match")
		}

		if err := enc.Setup(pass); err != nil {
			return fmt.Errorf("generating keys: %w", err)
		}

		fmt.Printf("Public key:  %s\n", cfg.Encryption.PublicKeyPath)
		fmt.Printf("Private key: %s\n", cfg.Encryption.PrivateKeyPath)
		return nil
	},
}

// group command
var groupCmd = &cobra.Command{
	Use:   "group",
	Short: "Manage test case groups",
}

var groupAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Create a group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		description, _ := cmd.Flags().GetString("description")

		a, err := newApp("GroupAdd")
		if err != nil {
			return err
		}
		defer a.Close()

		g, err := a.Service().Groups().Create(args[0], description)
		if err != nil {
			return err
		}

		fmt.Printf("Created group %s (%s)\n", g.Name, g.ID)
		return nil
	},
}

var groupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List groups",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("GroupList")
		if err != nil {
			return err
		}
		defer a.Close()

		groups := a.Service().Groups().List()
		if len(groups) == 0 {
			fmt.Println("No groups.")
			return nil
		}

		for _, g := range groups {
			fmt.Printf("%s  %-20s  %3d case(s)  %s\n",
				g.ID, g.Name, g.CaseCount, g.CreatedAt.Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}

var groupRmCmd = &cobra.Command{
	Use:   "rm GROUP",
	Short: "Delete a group and its cases",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("GroupDelete")
		if err != nil {
			return err
		}
		defer a.Close()

		g, err := resolveGroup(a.Service(), args[0])
		if err != nil {
			return err
		}

		if err := a.Service().DeleteGroup(g.ID); err != nil {
			return err
		}

		fmt.Printf("Deleted group %s\n", g.Name)
		return nil
	},
}

var groupVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check group case counters against live membership",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("GroupVerify")
		if err != nil {
			return err
		}
		defer a.Close()

		mismatches := a.Service().VerifyCaseCounts()
		if len(mismatches) == 0 {
			fmt.Println("All group counters match.")
			return nil
		}

		for _, m := range mismatches {
			fmt.Printf("%s (%s): stored %d, live %d\n", m.GroupName, m.GroupID, m.Stored, m.Live)
		}
		return fmt.Errorf("%d group counter(s) out of sync", len(mismatches))
	},
}

// case command
var caseCmd = &cobra.Command{
	Use:   "case",
	Short: "Manage test cases",
}

var caseAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Create a test case",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		groupRef, _ := cmd.Flags().GetString("group")
		precondition, _ := cmd.Flags().GetString("precondition")
		steps, _ := cmd.Flags().GetString("steps")
		expected, _ := cmd.Flags().GetString("expected")
		priority, _ := cmd.Flags().GetString("priority")

		a, err := newApp("CaseAdd")
		if err != nil {
			return err
		}
		defer a.Close()

		c := model.TestCase{
			Name:           args[0],
			Precondition:   precondition,
			Steps:          steps,
			ExpectedResult: expected,
			Priority:       model.Priority(priority),
		}

		if groupRef != "" {
			g, err := resolveGroup(a.Service(), groupRef)
			if err != nil {
				return err
			}
			c.GroupID = g.ID
		}

		created, err := a.Service().CreateCase(c)
		if err != nil {
			return err
		}

		fmt.Printf("Created case %s (%s)\n", created.Name, created.ID)
		return nil
	},
}

var caseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List test cases",
	RunE: func(cmd *cobra.Command, args []string) error {
		groupRef, _ := cmd.Flags().GetString("group")
		query, _ := cmd.Flags().GetString("search")

		a, err := newApp("CaseList")
		if err != nil {
			return err
		}
		defer a.Close()

		groupID := ""
		if groupRef != "" {
			g, err := resolveGroup(a.Service(), groupRef)
			if err != nil {
				return err
			}
			groupID = g.ID
		}

		cases := a.Service().Cases().Filter(groupID, query)
		if len(cases) == 0 {
			fmt.Println("No cases.")
			return nil
		}

		for _, c := range cases {
			group := c.GroupName
			if group == "" {
				group = "-"
			}
			fmt.Printf("%s  %-30s  %-6s  %-7s  %s\n", c.ID, c.Name, c.Priority, c.Status, group)
		}
		return nil
	},
}

var caseShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show a test case",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("CaseShow")
		if err != nil {
			return err
		}
		defer a.Close()

		c, err := a.Service().Cases().Get(args[0])
		if err != nil {
			return err
		}
		if c == nil {
			return fmt.Errorf("case not found: %s", args[0])
		}

		fmt.Printf("Name:     %s\n", c.Name)
		fmt.Printf("Priority: %s\n", c.Priority)
		fmt.Printf("Status:   %s\n", c.Status)
		if c.GroupName != "" {
			fmt.Printf("Group:    %s\n", c.GroupName)
		}
		if c.Precondition != "" {
			fmt.Println("Precondition:")
			displayLines("  ", c.Precondition)
		}
		fmt.Println("Steps:")
		displayLines("  ", c.Steps)
		fmt.Println("Expected result:")
		displayLines("  ", c.ExpectedResult)
		return nil
	},
}

var caseEditCmd = &cobra.Command{
	Use:   "edit ID",
	Short: "Edit a test case",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("CaseEdit")
		if err != nil {
			return err
		}
		defer a.Close()

		current, err := a.Service().Cases().Get(args[0])
		if err != nil {
			return err
		}
		if current == nil {
			return fmt.Errorf("case not found: %s", args[0])
		}

		u := tcm.CaseUpdate{
			Name:           current.Name,
			Precondition:   current.Precondition,
			Steps:          current.Steps,
			ExpectedResult: current.ExpectedResult,
			Priority:       current.Priority,
			Status:         current.Status,
		}
		if cmd.Flags().Changed("name") {
			u.Name, _ = cmd.Flags().GetString("name")
		}
		if cmd.Flags().Changed("precondition") {
			u.Precondition, _ = cmd.Flags().GetString("precondition")
		}
		if cmd.Flags().Changed("steps") {
			u.Steps, _ = cmd.Flags().GetString("steps")
		}
		if cmd.Flags().Changed("expected") {
			u.ExpectedResult, _ = cmd.Flags().GetString("expected")
		}
		if cmd.Flags().Changed("priority") {
			p, _ := cmd.Flags().GetString("priority")
			u.Priority = model.Priority(p)
		}
		if cmd.Flags().Changed("status") {
			st, _ := cmd.Flags().GetString("status")
			u.Status = model.Status(st)
		}

		updated, err := a.Service().Cases().Update(args[0], u)
		if err != nil {
			return err
		}

		fmt.Printf("Updated case %s\n", updated.ID)
		return nil
	},
}

var caseRmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Delete a test case",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("CaseDelete")
		if err != nil {
			return err
		}
		defer a.Close()

		removed, err := a.Service().DeleteCase(args[0])
		if err != nil {
			return err
		}
		if !removed {
			return fmt.Errorf("case not found: %s", args[0])
		}

		fmt.Printf("Deleted case %s\n", args[0])
		return nil
	},
}

var caseImportCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Import cases from an OPML outline",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		groupRef, _ := cmd.Flags().GetString("group")
		if groupRef == "" {
			return fmt.Errorf("--group is required")
		}

		a, err := newApp("CaseImport")
		if err != nil {
			return err
		}
		defer a.Close()

		g, err := resolveGroup(a.Service(), groupRef)
		if err != nil {
			return err
		}

		records, err := opml.ParseFile(args[0])
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("No cases found in file.")
			return nil
		}

		imported, err := a.Service().ImportCases(records, g.ID)
		if err != nil {
			return err
		}

		fmt.Printf("Imported %d case(s) into %s\n", len(imported), g.Name)
		return nil
	},
}

// batch command
var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Manage execution batches",
}

var batchCreateCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create an execution batch",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		groupRef, _ := cmd.Flags().GetString("group")
		caseIDs, _ := cmd.Flags().GetStringSlice("cases")

		if groupRef == "" && len(caseIDs) == 0 {
			return fmt.Errorf("either --group or --cases is required")
		}
		if groupRef != "" && len(caseIDs) > 0 {
			return fmt.Errorf("--group and --cases are mutually exclusive")
		}

		a, err := newApp("BatchCreate")
		if err != nil {
			return err
		}
		defer a.Close()

		var b *model.Batch
		if groupRef != "" {
			g, err := resolveGroup(a.Service(), groupRef)
			if err != nil {
				return err
			}
			b, err = a.Service().CreateBatchFromGroup(args[0], g.ID)
			if err != nil {
				return err
			}
		} else {
			b, err = a.Service().CreateBatchFromSelection(args[0], caseIDs)
			if err != nil {
				return err
			}
		}

		fmt.Printf("Created batch #%d %q with %d case(s)\n", b.ID, b.Name, len(b.Cases))
		return nil
	},
}

var batchListCmd = &cobra.Command{
	Use:   "list",
	Short: "List execution batches",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("BatchList")
		if err != nil {
			return err
		}
		defer a.Close()

		batches := a.Service().Batches().List()
		if len(batches) == 0 {
			fmt.Println("No batches.")
			return nil
		}

		for _, b := range batches {
			stats := tcm.ComputeStats(b.Cases)
			fmt.Printf("#%-4d  %-30s  %-11s  %d case(s)  %d%% pass  %s\n",
				b.ID, b.Name, tcm.Completion(b.Cases), len(b.Cases),
				stats.PassRate, b.CreatedAt.Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}

var batchShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show a batch and its cases",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid batch id: %s", args[0])
		}

		a, err := newApp("BatchShow")
		if err != nil {
			return err
		}
		defer a.Close()

		b, err := a.Service().Batches().Get(id)
		if err != nil {
			return err
		}
		if b == nil {
			return fmt.Errorf("batch not found: %d", id)
		}

		stats := tcm.ComputeStats(b.Cases)
		fmt.Printf("Batch #%d  %s\n", b.ID, b.Name)
		fmt.Printf("State:    %s\n", tcm.Completion(b.Cases))
		fmt.Printf("Created:  %s\n", b.CreatedAt.Format("2006-01-02 15:04:05"))
		fmt.Printf("Cases:    %d (passed %d, failed %d, pending %d, locked %d)\n",
			stats.Total, stats.Passed, stats.Failed, stats.Pending, stats.Locked)
		fmt.Printf("Pass rate: %d%%\n\n", stats.PassRate)

		for _, c := range b.Cases {
			executed := ""
			if c.ExecutedAt != nil {
				executed = "  " + c.ExecutedAt.Format("2006-01-02 15:04:05")
			}
			fmt.Printf("%s  %-30s  %-7s%s\n", c.ID, c.Name, c.Status, executed)
		}
		return nil
	},
}

var batchMarkCmd = &cobra.Command{
	Use:   "mark BATCH CASE STATUS",
	Short: "Record the execution status of a case in a batch",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid batch id: %s", args[0])
		}
		status := model.Status(strings.ToLower(args[2]))

		a, err := newApp("BatchMark")
		if err != nil {
			return err
		}
		defer a.Close()

		b, err := a.Service().Batches().UpdateCaseStatus(id, args[1], status)
		if err != nil {
			return err
		}

		fmt.Printf("Marked case %s as %s (batch #%d now %s)\n",
			args[1], status, b.ID, tcm.Completion(b.Cases))
		return nil
	},
}

var batchRmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Delete a batch",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid batch id: %s", args[0])
		}

		a, err := newApp("BatchDelete")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Service().Batches().Delete(id); err != nil {
			return err
		}

		fmt.Printf("Deleted batch #%d\n", id)
		return nil
	},
}

// stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "View execution statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		batchID, _ := cmd.Flags().GetInt("batch")
		recent, _ := cmd.Flags().GetInt("recent")

		a, err := newApp("Stats")
		if err != nil {
			return err
		}
		defer a.Close()

		stats, err := a.Service().DashboardStats(batchID)
		if err != nil {
			return err
		}

		scope := "all batches"
		if batchID != 0 {
			scope = fmt.Sprintf("batch #%d", batchID)
		}
		fmt.Printf("Statistics for %s:\n", scope)
		fmt.Printf("  Total:    %d\n", stats.Total)
		fmt.Printf("  Passed:   %d\n", stats.Passed)
		fmt.Printf("  Failed:   %d\n", stats.Failed)
		fmt.Printf("  Pending:  %d\n", stats.Pending)
		fmt.Printf("  Locked:   %d\n", stats.Locked)
		fmt.Printf("  Pass rate: %d%%\n", stats.PassRate)

		if recent > 0 {
			executions := a.Service().RecentExecutions(recent)
			if len(executions) > 0 {
				fmt.Println("\nRecent executions:")
				for _, c := range executions {
					when := c.CreatedAt
					if c.ExecutedAt != nil {
						when = *c.ExecutedAt
					}
					fmt.Printf("  %-30s  %-6s  %s\n", c.Name, c.Status, when.Format("2006-01-02 15:04:05"))
				}
			}
		}
		return nil
	},
}

// settings command
var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
}

var settingsGetCmd = &cobra.Command{
	Use:   "get",
	Short: "View settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("SettingsGet")
		if err != nil {
			return err
		}
		defer a.Close()

		s := a.Service().Settings().Get()
		fmt.Printf("Default group: %s\n", s.DefaultGroup)
		fmt.Printf("Batch size:    %d\n", s.BatchSize)
		fmt.Printf("Auto save:     %t\n", s.AutoSave)
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("SettingsSet")
		if err != nil {
			return err
		}
		defer a.Close()

		s := a.Service().Settings().Get()
		if cmd.Flags().Changed("default-group") {
			s.DefaultGroup, _ = cmd.Flags().GetString("default-group")
		}
		if cmd.Flags().Changed("batch-size") {
			s.BatchSize, _ = cmd.Flags().GetInt("batch-size")
		}
		if cmd.Flags().Changed("auto-save") {
			s.AutoSave, _ = cmd.Flags().GetBool("auto-save")
		}

		if err := a.Service().Settings().Put(s); err != nil {
			return err
		}

		fmt.Println("Settings updated.")
		return nil
	},
}

// export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export an encrypted snapshot of all collections to the vault",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("Export")
		if err != nil {
			return err
		}
		defer a.Close()

		version, err := a.Exporter().Export()
		if err != nil {
			return err
		}

		fmt.Printf("Exported snapshot version %d\n", version)
		return nil
	},
}

// restore command
var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Restore collections from the latest vault snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("Restore")
		if err != nil {
			return err
		}
		defer a.Close()

		pass, err := readPassphrase("Passphrase for private key: ")
		if err != nil {
			return err
		}

		decryptCtx, err := a.Encryptor().Unlock(pass)
		if err != nil {
			return fmt.Errorf("unlocking private key: %w", err)
		}

		version, err := a.Exporter().Restore(decryptCtx)
		if err != nil {
			return err
		}

		fmt.Printf("Restored snapshot version %d\n", version)
		return nil
	},
}

func init() {
	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)

	// keys subcommands
	keysCmd.AddCommand(keysInitCmd)

	// group subcommands
	groupCmd.AddCommand(groupAddCmd)
	groupAddCmd.Flags().StringP("description", "d", "", "Group description")
	groupCmd.AddCommand(groupListCmd)
	groupCmd.AddCommand(groupRmCmd)
	groupCmd.AddCommand(groupVerifyCmd)

	// case subcommands
	caseCmd.AddCommand(caseAddCmd)
	caseAddCmd.Flags().StringP("group", "g", "", "Group ID or name")
	caseAddCmd.Flags().String("precondition", "", "Precondition text")
	caseAddCmd.Flags().String("steps", "", "Step text")
	caseAddCmd.Flags().String("expected", "", "Expected result text")
	caseAddCmd.Flags().StringP("priority", "p", "medium", "Priority: high, medium or low")
	caseCmd.AddCommand(caseListCmd)
	caseListCmd.Flags().StringP("group", "g", "", "Filter by group ID or name")
	caseListCmd.Flags().StringP("search", "s", "", "Filter by free-text search")
	caseCmd.AddCommand(caseShowCmd)
	caseCmd.AddCommand(caseEditCmd)
	caseEditCmd.Flags().String("name", "", "New name")
	caseEditCmd.Flags().String("precondition", "", "New precondition text")
	caseEditCmd.Flags().String("steps", "", "New step text")
	caseEditCmd.Flags().String("expected", "", "New expected result text")
	caseEditCmd.Flags().StringP("priority", "p", "", "New priority")
	caseEditCmd.Flags().String("status", "", "New authoring status")
	caseCmd.AddCommand(caseRmCmd)
	caseCmd.AddCommand(caseImportCmd)
	caseImportCmd.Flags().StringP("group", "g", "", "Target group ID or name")

	// batch subcommands
	batchCmd.AddCommand(batchCreateCmd)
	batchCreateCmd.Flags().StringP("group", "g", "", "Snapshot all cases of this group")
	batchCreateCmd.Flags().StringSlice("cases", nil, "Snapshot an explicit list of case IDs")
	batchCmd.AddCommand(batchListCmd)
	batchCmd.AddCommand(batchShowCmd)
	batchCmd.AddCommand(batchMarkCmd)
	batchCmd.AddCommand(batchRmCmd)

	// settings subcommands
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsSetCmd.Flags().String("default-group", "", "Default group for new cases")
	settingsSetCmd.Flags().Int("batch-size", 0, "Page size for listings (1-100)")
	settingsSetCmd.Flags().Bool("auto-save", true, "Persist edits automatically")

	// stats flags
	statsCmd.Flags().IntP("batch", "b", 0, "Restrict to one batch ID")
	statsCmd.Flags().IntP("recent", "n", 0, "Also show the N most recent executions")

	// root commands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(groupCmd)
	rootCmd.AddCommand(caseCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(restoreCmd)
}
