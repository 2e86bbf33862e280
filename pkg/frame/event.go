package frame

// Event is the closed enumeration of ESL event names (spec.md §3). Decode
// is total in the wire-string->Event direction except that any unrecognized
// string maps to EventNone; encode (Event.String) is total over the
// enumeration.
type Event int

const (
	EventNone Event = iota
	EventADD_SCHEDULE
	EventAPI
	EventBACKGROUND_JOB
	EventCALL_DETAIL
	EventCALL_SECURE
	EventCALL_SETUP_REQ
	EventCALL_UPDATE
	EventCDR
	EventCHANNEL_ANSWER
	EventCHANNEL_APPLICATION
	EventCHANNEL_BRIDGE
	EventCHANNEL_CALLSTATE
	EventCHANNEL_CREATE
	EventCHANNEL_DATA
	EventCHANNEL_DESTROY
	EventCHANNEL_EXECUTE
	EventCHANNEL_EXECUTE_COMPLETE
	EventCHANNEL_GLOBAL
	EventCHANNEL_HANGUP
	EventCHANNEL_HANGUP_COMPLETE
	EventCHANNEL_HOLD
	EventCHANNEL_ORIGINATE
	EventCHANNEL_OUTGOING
	EventCHANNEL_PARK
	EventCHANNEL_PROGRESS
	EventCHANNEL_PROGRESS_MEDIA
	EventCHANNEL_STATE
	EventCHANNEL_UNBRIDGE
	EventCHANNEL_UNHOLD
	EventCHANNEL_UNPARK
	EventCHANNEL_UUID
	EventCLONE
	EventCODEC
	EventCOMMAND
	EventCONFERENCE_DATA
	EventCONFERENCE_DATA_QUERY
	EventCUSTOM
	EventDEL_SCHEDULE
	EventDETECTED_SPEECH
	EventDETECTED_TONE
	EventDEVICE_STATE
	EventDTMF
	EventEXE_SCHEDULE
	EventFAILURE
	EventGENERAL
	EventHEARTBEAT
	EventLOG
	EventMEDIA_BUG_START
	EventMEDIA_BUG_STOP
	EventMESSAGE
	EventMESSAGE_QUERY
	EventMESSAGE_WAITING
	EventMODULE_LOAD
	EventMODULE_UNLOAD
	EventNAT
	EventNOTALK
	EventNOTIFY
	EventNOTIFY_IN
	EventPHONE_FEATURE
	EventPHONE_FEATURE_SUBSCRIBE
	EventPLAYBACK_START
	EventPLAYBACK_STOP
	EventPRESENCE_IN
	EventPRESENCE_OUT
	EventPRESENCE_PROBE
	EventPRIVATE_COMMAND
	EventPUBLISH
	EventQUEUE_LEN
	EventRECORD_START
	EventRECORD_STOP
	EventRECV_INFO
	EventRECV_MESSAGE
	EventRECV_RTCP_MESSAGE
	EventRECYCLE
	EventRELOADXML
	EventREQUEST_PARAMS
	EventRE_SCHEDULE
	EventROSTER
	EventSEND_INFO
	EventSEND_MESSAGE
	EventSESSION_HEARTBEAT
	EventSHUTDOWN
	EventSTARTUP
	EventSUBCLASS_ANY
	EventTALK
	EventTRAP
	EventUNPUBLISH
)

var eventWire = map[Event]string{
	EventADD_SCHEDULE: "ADD_SCHEDULE",
	EventAPI: "API",
	EventBACKGROUND_JOB: "BACKGROUND_JOB",
	EventCALL_DETAIL: "CALL_DETAIL",
	EventCALL_SECURE: "CALL_SECURE",
	EventCALL_SETUP_REQ: "CALL_SETUP_REQ",
	EventCALL_UPDATE: "CALL_UPDATE",
	EventCDR: "CDR",
	EventCHANNEL_ANSWER: "CHANNEL_ANSWER",
	EventCHANNEL_APPLICATION: "CHANNEL_APPLICATION",
	EventCHANNEL_BRIDGE: "CHANNEL_BRIDGE",
	EventCHANNEL_CALLSTATE: "CHANNEL_CALLSTATE",
	EventCHANNEL_CREATE: "CHANNEL_CREATE",
	EventCHANNEL_DATA: "CHANNEL_DATA",
	EventCHANNEL_DESTROY: "CHANNEL_DESTROY",
	EventCHANNEL_EXECUTE: "CHANNEL_EXECUTE",
	EventCHANNEL_EXECUTE_COMPLETE: "CHANNEL_EXECUTE_COMPLETE",
	EventCHANNEL_GLOBAL: "CHANNEL_GLOBAL",
	EventCHANNEL_HANGUP: "CHANNEL_HANGUP",
	EventCHANNEL_HANGUP_COMPLETE: "CHANNEL_HANGUP_COMPLETE",
	EventCHANNEL_HOLD: "CHANNEL_HOLD",
	EventCHANNEL_ORIGINATE: "CHANNEL_ORIGINATE",
	EventCHANNEL_OUTGOING: "CHANNEL_OUTGOING",
	EventCHANNEL_PARK: "CHANNEL_PARK",
	EventCHANNEL_PROGRESS: "CHANNEL_PROGRESS",
	EventCHANNEL_PROGRESS_MEDIA: "CHANNEL_PROGRESS_MEDIA",
	EventCHANNEL_STATE: "CHANNEL_STATE",
	EventCHANNEL_UNBRIDGE: "CHANNEL_UNBRIDGE",
	EventCHANNEL_UNHOLD: "CHANNEL_UNHOLD",
	EventCHANNEL_UNPARK: "CHANNEL_UNPARK",
	EventCHANNEL_UUID: "CHANNEL_UUID",
	EventCLONE: "CLONE",
	EventCODEC: "CODEC",
	EventCOMMAND: "COMMAND",
	EventCONFERENCE_DATA: "CONFERENCE_DATA",
	EventCONFERENCE_DATA_QUERY: "CONFERENCE_DATA_QUERY",
	EventCUSTOM: "CUSTOM",
	EventDEL_SCHEDULE: "DEL_SCHEDULE",
	EventDETECTED_SPEECH: "DETECTED_SPEECH",
	EventDETECTED_TONE: "DETECTED_TONE",
	EventDEVICE_STATE: "DEVICE_STATE",
	EventDTMF: "DTMF",
	EventEXE_SCHEDULE: "EXE_SCHEDULE",
	EventFAILURE: "FAILURE",
	EventGENERAL: "GENERAL",
	EventHEARTBEAT: "HEARTBEAT",
	EventLOG: "LOG",
	EventMEDIA_BUG_START: "MEDIA_BUG_START",
	EventMEDIA_BUG_STOP: "MEDIA_BUG_STOP",
	EventMESSAGE: "MESSAGE",
	EventMESSAGE_QUERY: "MESSAGE_QUERY",
	EventMESSAGE_WAITING: "MESSAGE_WAITING",
	EventMODULE_LOAD: "MODULE_LOAD",
	EventMODULE_UNLOAD: "MODULE_UNLOAD",
	EventNAT: "NAT",
	EventNOTALK: "NOTALK",
	EventNOTIFY: "NOTIFY",
	EventNOTIFY_IN: "NOTIFY_IN",
	EventPHONE_FEATURE: "PHONE_FEATURE",
	EventPHONE_FEATURE_SUBSCRIBE: "PHONE_FEATURE_SUBSCRIBE",
	EventPLAYBACK_START: "PLAYBACK_START",
	EventPLAYBACK_STOP: "PLAYBACK_STOP",
	EventPRESENCE_IN: "PRESENCE_IN",
	EventPRESENCE_OUT: "PRESENCE_OUT",
	EventPRESENCE_PROBE: "PRESENCE_PROBE",
	EventPRIVATE_COMMAND: "PRIVATE_COMMAND",
	EventPUBLISH: "PUBLISH",
	EventQUEUE_LEN: "QUEUE_LEN",
	EventRECORD_START: "RECORD_START",
	EventRECORD_STOP: "RECORD_STOP",
	EventRECV_INFO: "RECV_INFO",
	EventRECV_MESSAGE: "RECV_MESSAGE",
	EventRECV_RTCP_MESSAGE: "RECV_RTCP_MESSAGE",
	EventRECYCLE: "RECYCLE",
	EventRELOADXML: "RELOADXML",
	EventREQUEST_PARAMS: "REQUEST_PARAMS",
	EventRE_SCHEDULE: "RE_SCHEDULE",
	EventROSTER: "ROSTER",
	EventSEND_INFO: "SEND_INFO",
	EventSEND_MESSAGE: "SEND_MESSAGE",
	EventSESSION_HEARTBEAT: "SESSION_HEARTBEAT",
	EventSHUTDOWN: "SHUTDOWN",
	EventSTARTUP: "STARTUP",
	EventSUBCLASS_ANY: "SUBCLASS_ANY",
	EventTALK: "TALK",
	EventTRAP: "TRAP",
	EventUNPUBLISH: "UNPUBLISH",
}

var eventFromWire = func() map[string]Event {
	m := make(map[string]Event, len(eventWire))
	for e, s := range eventWire {
		m[s] = e
	}
	return m
}()

// String returns the canonical uppercase wire form, or "" for EventNone.
func (e Event) String() string {
	return eventWire[e]
}

// EventFromString decodes a wire event name. Unrecognized names (including
// "") decode to EventNone, never an error (spec.md §3: "partial (falling
// back to None) on decode").
func EventFromString(s string) Event {
	if e, ok := eventFromWire[s]; ok {
		return e
	}
	return EventNone
}
