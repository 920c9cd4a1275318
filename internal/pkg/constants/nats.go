package constants

// NATS subjects and JetStream names
const (
	StreamLedgerJobs = "LEDGER_JOBS"

	// Job subjects, one per job kind: ledger.jobs.{name}
	SubjectJobPrefix   = "ledger.jobs."
	SubjectJobWildcard = "ledger.jobs.>"

	JobPayTo       = "pay_to"
	JobSettleChain = "settle_chain"

	// Settlement notices per recipient: ledger.notice.{event}
	SubjectSettlementNotice = "ledger.notice"

	// Operational alerts
	SubjectOpsAlert = "ops.alert"
)

// JetStream message headers carrying job scheduling state
const (
	HeaderJobID          = "Job-Id"
	HeaderJobAttempt     = "Job-Attempt"
	HeaderJobMaxAttempts = "Job-Max-Attempts"
	HeaderJobNotBefore   = "Job-Not-Before"
	HeaderJobBackoffBase = "Job-Backoff-Base"
	HeaderJobBackoffMax  = "Job-Backoff-Max"
	HeaderJobPriority    = "Job-Priority"
)
