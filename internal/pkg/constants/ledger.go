package constants

// Remarks stored on transactions closed without success
const (
	RemarkInvalid             = "invalid"
	RemarkMissingParty        = "missing_party"
	RemarkPartyNotFound       = "party_not_found"
	RemarkInsufficientBalance = "insufficient_balance"
	RemarkOverTransferCap     = "over_transfer_cap"
	RemarkOverDailyCap        = "over_daily_cap"
	RemarkReverted            = "reverted"
)

// ContentURIScheme prefixes curation content ids
const ContentURIScheme = "ipfs://"

// Sources reported on operator alerts
const (
	AlertSourceWatcher    = "chain_watcher"
	AlertSourceReconciler = "event_reconciler"
	AlertSourceJobs       = "jobs"
)
