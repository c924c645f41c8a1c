package config

import "time"

// Default values for configuration
const (
	// Log defaults
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	// Image transform policy defaults
	DefaultImageMaxWidth      = 300
	DefaultImageMaxHeight     = 300
	DefaultImageQuality       = 85
	DefaultImageFormat        = "jpeg"
	DefaultImageTempDir       = "tmp"
	DefaultImageMaxConcurrent = 4
	DefaultImageSweepMaxAge   = time.Hour
)

// Default bot messages, one per user-facing reply.
var DefaultMessages = MessagesConfig{
	Welcome:               "🎉 Welcome back! Send me images to process.",
	UnderReview:           "⌛ Your account is under review. Please wait for admin approval.\nUse /request_access to notify admin.",
	JoinChannelFmt:        "⚠️ Please join our channel first: %d",
	MembershipCheckFailed: "❌ Couldn't verify channel membership. Please try later.",
	AccessRequested:       "✅ Admin notified! We'll contact you soon.",
	AccessRequestFmt:      "🆕 Access request from:\nUser: @%s\nID: %d\nUse /approve %d to grant access",
	NotAuthorized:         "❌ Admin access required!",
	ApproveUsage:          "Usage: /approve <user_id>",
	ApprovedNotice:        "🎉 Your access has been approved! Use /start to begin.",
	ApproveSuccessFmt:     "✅ User %d approved successfully!",
	BroadcastUsage:        "Usage: /broadcast <message>",
	BroadcastResultFmt:    "📢 Broadcast results:\n• Success: %d\n• Failed: %d",
	NotApproved:           "❌ Your account isn't approved yet!",
	ProcessingFailed:      "❌ Failed to process image. Please try another file.",
	ProcessedCaption:      "Here's your processed image!",
	GeneralError:          "❌ An error occurred. Please try again later.",
	Help: "Available Commands:\n" +
		"/start - Begin using the bot\n" +
		"/request_access - Request approval\n" +
		"/help - Show this message\n" +
		"\n" +
		"Admin Commands:\n" +
		"/approve [user_id] - Approve a user\n" +
		"/broadcast [message] - Send message to all users",
}

// Default scheduled tasks. Schedules use the six-field cron syntax with a
// leading seconds field.
var DefaultSchedulerTasks = map[string]TaskConfig{
	"db_maintenance": {Enabled: true, Schedule: "0 0 4 * * *"},
	"temp_sweep":     {Enabled: true, Schedule: "0 */30 * * * *"},
}
