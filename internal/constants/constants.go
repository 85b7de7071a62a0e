package constants

// Sheet names inside the backing spreadsheet.
const (
	SubmissionsSheet = "Submissions"
	ConfigSheet      = "Config"
)

// General intake settings
const (
	MaxCleanings   = 12 // hard cap on cleanings per plan
	MaxListedPlans = 20 // newest-first cap for GET /api/duo/plans

	PlanIDPrefix     = "DUO-"
	CleaningIDPrefix = "CLN-"

	DefaultStatus = "Pending"
)

/*
Submissions sheet column headers. Column ORDER is not contractual — all access
resolves these names against the live header row, case-insensitively. Renaming
one here without migrating the sheet orphans the column.
*/
const (
	HdrTimestamp     = "Timestamp"
	HdrID            = "ID"
	HdrFullName      = "Full Name"
	HdrEmail         = "Email"
	HdrPhone         = "Phone"
	HdrDepartment    = "Department"
	HdrCategory      = "Category"
	HdrPriority      = "Priority"
	HdrNotes         = "Notes"
	HdrStatus        = "Status"
	HdrAttachmentURL = "Attachment URL"

	HdrUserType   = "User Type"
	HdrFlowAction = "Flow Action"

	HdrProvince        = "Province"
	HdrCityTown        = "City/Town"
	HdrStreetNumber    = "Street/Number"
	HdrPropertyDetails = "Property Details"
	HdrPropertyType    = "Property Type"

	HdrDurationHours     = "Duration Hours"
	HdrNumberOfCleanings = "Number of Cleanings"
	HdrAutoRenew         = "Auto Renew"

	HdrScheduleDate = "Schedule Date"
	HdrScheduleTime = "Schedule Time"
	HdrTimeWindow   = "Time Window"
	HdrExtrasJSON   = "Extras (JSON)"

	HdrCleaningInstructions = "Cleaning Instructions"
	HdrFavoriteDuo          = "Favorite Duo0"
	HdrServiceType          = "Type of service to be performed"

	HdrCleaningsJSON = "Cleanings (JSON)"

	HdrEmailSentRequest   = "Email Sent (Request)"
	HdrEmailSentAtRequest = "Email Sent At (Request)"
	HdrEmailErrRequest    = "Email Error (Request)"

	HdrEmailSentReminderJSON   = "Email Sent (Reminder) (JSON)"
	HdrEmailSentAtReminderJSON = "Email Sent At (Reminder) (JSON)"
	HdrEmailErrReminder        = "Email Error (Reminder)"
	HdrEmailSentAtDoneJSON     = "Email Sent At (Completed) (JSON)"
	HdrEmailSentDoneJSON       = "Email Sent (Completed) (JSON)"
	HdrEmailErrDone            = "Email Error (Completed)"
)

// RequiredHeaders is the additive schema: any of these missing from the live
// header row gets appended (never reordered, never removed) before a write.
var RequiredHeaders = []string{
	HdrTimestamp,
	HdrID,

	HdrFullName,
	HdrEmail,
	HdrPhone,
	HdrDepartment,
	HdrCategory,
	HdrPriority,
	HdrNotes,
	HdrStatus,
	HdrAttachmentURL,

	HdrUserType,
	HdrFlowAction,

	HdrProvince,
	HdrCityTown,
	HdrStreetNumber,
	HdrPropertyDetails,
	HdrPropertyType,

	HdrDurationHours,
	HdrNumberOfCleanings,
	HdrAutoRenew,

	HdrScheduleDate,
	HdrScheduleTime,
	HdrTimeWindow,
	HdrExtrasJSON,

	HdrCleaningInstructions,
	HdrFavoriteDuo,
	HdrServiceType,

	HdrCleaningsJSON,

	HdrEmailSentRequest,
	HdrEmailSentAtRequest,
	HdrEmailErrRequest,

	HdrEmailSentReminderJSON,
	HdrEmailSentAtReminderJSON,
	HdrEmailErrReminder,
	HdrEmailSentAtDoneJSON,
	HdrEmailSentDoneJSON,
	HdrEmailErrDone,
}
