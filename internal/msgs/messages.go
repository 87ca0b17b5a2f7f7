package msgs

const (
	MsgOperationSuccessful = "operation successful"
	MsgOperationFailed     = "operation failed"
	MsgYouMustLoginFirst   = "you must login first"
	MsgMessageSent         = "message sent"
	MsgMessagesSeen        = "messages seen"
	MsgMessageDeleted      = "message deleted"
)
