package commands

import (
	"github.com/spf13/cobra"

	"flowtask/cmd/flowtask/output"
	"flowtask/internal/model"
)

// notificationCmd represents the notification command
var notificationCmd = &cobra.Command{
	Use:     "notification",
	Aliases: []string{"notif"},
	Short:   "Manage notifications",
	Long: `Read and manage notifications for the signed-in account.

Examples:
  # List notifications
  flowtask notification list

  # Only unread ones
  flowtask notification list --unread

  # Show the unread badge count
  flowtask notification unread-count

  # Mark everything read
  flowtask notification read-all`,
}

// notificationListCmd lists notifications
var notificationListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notifications",
	RunE: func(cmd *cobra.Command, args []string) error {
		var filters model.NotificationFilters
		if unread, _ := cmd.Flags().GetBool("unread"); unread {
			isRead := false
			filters.IsRead = &isRead
		}
		filters.Type, _ = cmd.Flags().GetString("type")
		filters.Limit, _ = cmd.Flags().GetInt("limit")
		filters.Offset, _ = cmd.Flags().GetInt("offset")

		notifications, err := container.API.ListNotifications(getContext(), filters)
		if err != nil {
			return err
		}

		if formatter.Format() != output.FormatText {
			return formatter.Print(notifications)
		}

		if len(notifications) == 0 {
			printer.Subtle("No notifications.")
			return nil
		}
		for _, n := range notifications {
			marker := "*"
			if n.IsRead {
				marker = " "
			}
			printer.Println("%s #%d %s: %s", marker, n.ID, n.Title, n.Message)
		}
		return nil
	},
}

// notificationUnreadCountCmd prints the unread badge count
var notificationUnreadCountCmd = &cobra.Command{
	Use:   "unread-count",
	Short: "Show the number of unread notifications",
	RunE: func(cmd *cobra.Command, args []string) error {
		count, err := container.API.UnreadCount(getContext())
		if err != nil {
			return err
		}
		printer.Println("%d", count)
		return nil
	},
}

// notificationReadCmd marks one notification read
var notificationReadCmd = &cobra.Command{
	Use:   "read <notification-id>",
	Short: "Mark a notification as read",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseTaskID(args[0])
		if err != nil {
			return err
		}
		if _, err := container.API.MarkNotificationRead(getContext(), id); err != nil {
			return err
		}
		printer.Success("Marked notification #%d read", id)
		return nil
	},
}

// notificationReadAllCmd marks every notification read
var notificationReadAllCmd = &cobra.Command{
	Use:   "read-all",
	Short: "Mark all notifications as read",
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := container.API.MarkAllNotificationsRead(getContext())
		if err != nil {
			return err
		}
		printer.Success("Marked %d notification(s) read", resp.UpdatedCount)
		return nil
	},
}

// notificationDeleteCmd deletes a notification
var notificationDeleteCmd = &cobra.Command{
	Use:   "delete <notification-id>",
	Short: "Delete a notification",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseTaskID(args[0])
		if err != nil {
			return err
		}
		if err := container.API.DeleteNotification(getContext(), id); err != nil {
			return err
		}
		printer.Success("Deleted notification #%d", id)
		return nil
	},
}

func init() {
	notificationListCmd.Flags().Bool("unread", false, "only unread notifications")
	notificationListCmd.Flags().String("type", "", "filter by notification type")
	notificationListCmd.Flags().Int("limit", 0, "maximum notifications per page")
	notificationListCmd.Flags().Int("offset", 0, "number of notifications to skip")

	notificationCmd.AddCommand(notificationListCmd)
	notificationCmd.AddCommand(notificationUnreadCountCmd)
	notificationCmd.AddCommand(notificationReadCmd)
	notificationCmd.AddCommand(notificationReadAllCmd)
	notificationCmd.AddCommand(notificationDeleteCmd)
	rootCmd.AddCommand(notificationCmd)
}
