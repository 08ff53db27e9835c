package constants

const (
	AppName            = "habitboard"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/habitboard/habitboard.db"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// MonthFormat identifies a calendar month (YYYY-MM)
	MonthFormat = "2006-01"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "habitboard-"
	BackupFileSuffix = ".db"

	// Habit defaults, applied when a create request leaves a field empty
	DefaultHabitIcon          = "📝"
	DefaultHabitTargetDays    = 30
	DefaultHabitScheduledTime = "09:00"
	MinTargetDays             = 1
	MaxTargetDays             = 31

	// Users
	DefaultUsername       = "default_user"
	DefaultUserFullName   = "Habit Tracker User"
	AvatarURLPrefix       = "https://api.dicebear.com/7.x/avataaars/svg?seed="
	DefaultProfilePicture = AvatarURLPrefix + "HabitMaster"
	FriendCodeLength      = 8

	// Toggle outcomes
	ToggleStatusAdded   = "added"
	ToggleStatusRemoved = "removed"

	// Friendship outcomes
	FriendStatusAdded   = "added"
	FriendStatusExisted = "already friends"

	DefaultTimezone   = "Local"
	DefaultServerPort = "8000"
)
