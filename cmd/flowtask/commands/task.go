package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"flowtask/cmd/flowtask/output"
	"flowtask/internal/model"
)

// taskCmd represents the task command
var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks",
	Long: `Manage tasks on the FlowTask backend - create, update, toggle, delete,
and query tasks.

Each task has a server-assigned ID, a title, description, priority, tags,
and a completed flag. The backend is the source of truth: IDs and timestamps
are never assigned locally.

Examples:
  # List all tasks
  flowtask task list

  # Search active tasks, highest priority first
  flowtask task list --search "review" --completed=false --sort priority

  # Create a new task
  flowtask task create --title "Fix login bug" --priority high --tag bug --tag urgent

  # Update a task
  flowtask task update 42 --title "Fix login redirect"

  # Flip the completed flag
  flowtask task toggle 42

  # Delete a task
  flowtask task delete 42`,
}

// taskListCmd lists tasks
var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Long: `List tasks with optional filtering, search, sorting, and pagination.

Output formats:
  text - Human-readable list (default)
  json - JSON output for scripting
  yaml - YAML output

Examples:
  # List all tasks
  flowtask task list

  # List active tasks only
  flowtask task list --completed=false

  # List high priority tasks with a tag
  flowtask task list --priority high --tag urgent

  # Search and sort
  flowtask task list --search "report" --sort updated_at --order asc

  # Page through results
  flowtask task list --limit 20 --offset 40`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := getContext()

		filters := model.DefaultFilters()
		filters.Search, _ = cmd.Flags().GetString("search")

		if priority, _ := cmd.Flags().GetString("priority"); priority != "" {
			p, err := model.ParsePriority(priority)
			if err != nil {
				return fmt.Errorf("invalid --priority %q: %w", priority, err)
			}
			filters.Priority = p
		}
		if cmd.Flags().Changed("completed") {
			completed, _ := cmd.Flags().GetBool("completed")
			filters.Completed = &completed
		}
		if tags, _ := cmd.Flags().GetStringSlice("tag"); len(tags) > 0 {
			filters.Tags = tags
		}
		if sortField, _ := cmd.Flags().GetString("sort"); sortField != "" {
			f, err := model.ParseSortField(sortField)
			if err != nil {
				return fmt.Errorf("invalid --sort %q: %w", sortField, err)
			}
			filters.Sort = f
		}
		if order, _ := cmd.Flags().GetString("order"); order != "" {
			o, err := model.ParseSortOrder(order)
			if err != nil {
				return fmt.Errorf("invalid --order %q: %w", order, err)
			}
			filters.Order = o
		}
		if limit, _ := cmd.Flags().GetInt("limit"); limit > 0 {
			filters.Limit = limit
		}
		filters.Offset, _ = cmd.Flags().GetInt("offset")

		resp, err := container.API.ListTasks(ctx, filters)
		if err != nil {
			return err
		}

		if formatter.Format() != output.FormatText {
			return formatter.Print(resp)
		}

		if len(resp.Tasks) == 0 {
			printer.Subtle("No tasks found.")
			return nil
		}
		for _, task := range resp.Tasks {
			printer.Println("%s", renderTaskLine(task))
		}
		if !quiet {
			printer.Subtle("%d of %d task(s)", len(resp.Tasks), resp.Total)
		}
		return nil
	},
}

// taskGetCmd shows a single task
var taskGetCmd = &cobra.Command{
	Use:   "get <task-id>",
	Short: "Show a single task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseTaskID(args[0])
		if err != nil {
			return err
		}

		task, err := container.API.GetTask(getContext(), id)
		if err != nil {
			return err
		}

		if formatter.Format() != output.FormatText {
			return formatter.Print(task)
		}

		printer.Println("%s", renderTaskLine(*task))
		if task.Description != "" {
			printer.Println("  %s", task.Description)
		}
		printer.Subtle("  created %s, updated %s",
			task.CreatedAt.Format("2006-01-02 15:04"),
			task.UpdatedAt.Format("2006-01-02 15:04"))
		for _, sub := range task.Subtasks {
			printer.Println("  %s %s", checkbox(sub.Completed), sub.Title)
		}
		return nil
	},
}

// taskCreateCmd creates a task
var taskCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new task",
	Long: `Create a new task. The server assigns the ID, timestamps, and defaults
for omitted fields.

Examples:
  flowtask task create --title "Buy milk" --priority low --tag errand
  flowtask task create --title "Write report" --description "Q3 numbers"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		description, _ := cmd.Flags().GetString("description")
		tags, _ := cmd.Flags().GetStringSlice("tag")

		if strings.TrimSpace(title) == "" {
			return model.ErrEmptyTitle
		}

		req := model.TaskCreate{
			Title:       strings.TrimSpace(title),
			Description: description,
			Tags:        tags,
		}
		if priority, _ := cmd.Flags().GetString("priority"); priority != "" {
			p, err := model.ParsePriority(priority)
			if err != nil {
				return fmt.Errorf("invalid --priority %q: %w", priority, err)
			}
			req.Priority = p
		}

		task, err := container.API.CreateTask(getContext(), req)
		if err != nil {
			return err
		}

		if formatter.Format() != output.FormatText {
			return formatter.Print(task)
		}
		printer.Success("Created task #%d: %s", task.ID, task.Title)
		return nil
	},
}

// taskUpdateCmd partially updates a task
var taskUpdateCmd = &cobra.Command{
	Use:   "update <task-id>",
	Short: "Update a task",
	Long: `Update fields of an existing task. Only the flags you pass are sent;
everything else keeps its current value.

Examples:
  flowtask task update 42 --title "New title"
  flowtask task update 42 --priority high --tags bug,urgent
  flowtask task update 42 --completed=true`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseTaskID(args[0])
		if err != nil {
			return err
		}

		var patch model.TaskPatch
		if cmd.Flags().Changed("title") {
			title, _ := cmd.Flags().GetString("title")
			if strings.TrimSpace(title) == "" {
				return model.ErrEmptyTitle
			}
			title = strings.TrimSpace(title)
			patch.Title = &title
		}
		if cmd.Flags().Changed("description") {
			description, _ := cmd.Flags().GetString("description")
			patch.Description = &description
		}
		if cmd.Flags().Changed("priority") {
			priority, _ := cmd.Flags().GetString("priority")
			p, err := model.ParsePriority(priority)
			if err != nil {
				return fmt.Errorf("invalid --priority %q: %w", priority, err)
			}
			patch.Priority = &p
		}
		if cmd.Flags().Changed("tags") {
			tags, _ := cmd.Flags().GetStringSlice("tags")
			patch.Tags = tags
		}
		if cmd.Flags().Changed("completed") {
			completed, _ := cmd.Flags().GetBool("completed")
			patch.Completed = &completed
		}

		task, err := container.API.PatchTask(getContext(), id, patch)
		if err != nil {
			return err
		}

		if formatter.Format() != output.FormatText {
			return formatter.Print(task)
		}
		printer.Success("Updated task #%d: %s", task.ID, task.Title)
		return nil
	},
}

// taskToggleCmd flips the completed flag
var taskToggleCmd = &cobra.Command{
	Use:   "toggle <task-id>",
	Short: "Flip a task's completed flag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseTaskID(args[0])
		if err != nil {
			return err
		}

		task, err := container.API.ToggleTask(getContext(), id)
		if err != nil {
			return err
		}

		if formatter.Format() != output.FormatText {
			return formatter.Print(task)
		}
		state := "active"
		if task.Completed {
			state = "completed"
		}
		printer.Success("Task #%d is now %s", task.ID, state)
		return nil
	},
}

// taskDeleteCmd deletes a task
var taskDeleteCmd = &cobra.Command{
	Use:   "delete <task-id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseTaskID(args[0])
		if err != nil {
			return err
		}

		if err := container.API.DeleteTask(getContext(), id); err != nil {
			return err
		}
		printer.Success("Deleted task #%d", id)
		return nil
	},
}

func parseTaskID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid task ID %q: %w", arg, err)
	}
	return id, nil
}

func checkbox(completed bool) string {
	if completed {
		return "[x]"
	}
	return "[ ]"
}

func renderTaskLine(task model.Task) string {
	line := fmt.Sprintf("%s #%d %s (%s)", checkbox(task.Completed), task.ID, task.Title, task.Priority)
	if len(task.Tags) > 0 {
		line += " [" + model.JoinTags(task.Tags) + "]"
	}
	return line
}

func init() {
	taskListCmd.Flags().String("search", "", "search in title and description")
	taskListCmd.Flags().String("priority", "", "filter by priority (low, medium, high)")
	taskListCmd.Flags().Bool("completed", false, "filter by completion status")
	taskListCmd.Flags().StringSlice("tag", nil, "filter by tag (repeatable)")
	taskListCmd.Flags().String("sort", "", "sort field (created_at, updated_at, priority, title, display_order)")
	taskListCmd.Flags().String("order", "", "sort order (asc, desc)")
	taskListCmd.Flags().Int("limit", 0, "maximum tasks per page (1-100)")
	taskListCmd.Flags().Int("offset", 0, "number of tasks to skip")

	taskCreateCmd.Flags().String("title", "", "task title (required)")
	taskCreateCmd.Flags().String("description", "", "task description")
	taskCreateCmd.Flags().String("priority", "", "priority (low, medium, high)")
	taskCreateCmd.Flags().StringSlice("tag", nil, "tag to attach (repeatable)")
	taskCreateCmd.MarkFlagRequired("title")

	taskUpdateCmd.Flags().String("title", "", "new title")
	taskUpdateCmd.Flags().String("description", "", "new description")
	taskUpdateCmd.Flags().String("priority", "", "new priority (low, medium, high)")
	taskUpdateCmd.Flags().StringSlice("tags", nil, "replacement tag set")
	taskUpdateCmd.Flags().Bool("completed", false, "set the completed flag")

	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskGetCmd)
	taskCmd.AddCommand(taskCreateCmd)
	taskCmd.AddCommand(taskUpdateCmd)
	taskCmd.AddCommand(taskToggleCmd)
	taskCmd.AddCommand(taskDeleteCmd)
	rootCmd.AddCommand(taskCmd)
}
