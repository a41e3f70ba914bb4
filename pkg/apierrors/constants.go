package apierrors

const (
	MsgTaskNotFound       = "taskNotFound"
	MsgInvalidTaskPayload = "invalidTaskPayload"
	MsgValidationFailed   = "validationFailed"
	MsgFailListTask       = "errorListTask"
	MsgFailGetTask        = "failGetTask"
	MsgFailCreateTask     = "failCreateTask"
	MsgFailUpdateTask     = "failUpdateTask"
	MsgFailDeleteTask     = "failDeleteTask"
	MsgHello              = "hello"
)

// Field-level validation messages, rendered with an Attribute template value.
const (
	MsgValidationRequired = "validationRequired"
	MsgValidationString   = "validationString"
	MsgValidationMax      = "validationMax"
	MsgValidationEnum     = "validationEnum"
	MsgValidationDate     = "validationDate"
)
