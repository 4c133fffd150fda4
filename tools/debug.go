package tools

import (
	"fmt"
	"strings"

	"github.com/glimgfx/glim/internal/logger"
	"github.com/vkngwrapper/extensions/v3/ext_debug_utils"
)

// DebugMessengerCreateInfo captures warnings and errors of every message type
// and reports them through log.
func DebugMessengerCreateInfo(log logger.Logger) ext_debug_utils.DebugUtilsMessengerCreateInfo {
	return ext_debug_utils.DebugUtilsMessengerCreateInfo{
		MessageSeverity: ext_debug_utils.SeverityWarning | ext_debug_utils.SeverityError,
		MessageType:     ext_debug_utils.TypeGeneral | ext_debug_utils.TypePerformance | ext_debug_utils.TypeValidation,
		UserCallback:    DebugCallback(log, true),
	}
}

// DebugCallback builds a messenger callback. With filterNoise set, the two
// warnings the validation layers emit about their own configuration are
// dropped. The callback never asks the driver to abort the call.
func DebugCallback(log logger.Logger, filterNoise bool) func(ext_debug_utils.DebugUtilsMessageTypeFlags, ext_debug_utils.DebugUtilsMessageSeverityFlags, *ext_debug_utils.DebugUtilsMessengerCallbackData) bool {
	log = debugLogger(log)
	return func(msgType ext_debug_utils.DebugUtilsMessageTypeFlags, severity ext_debug_utils.DebugUtilsMessageSeverityFlags, data *ext_debug_utils.DebugUtilsMessengerCallbackData) bool {
		if filterNoise && IsIgnoredMessage(data) {
			return false
		}

		msg := FormatDebugMessage(severity, msgType, data)
		if (severity & ext_debug_utils.SeverityError) != 0 {
			log.Err(nil, "%s", msg)
		} else {
			log.Warn("%s", msg)
		}
		return false
	}
}

// debugLogger replaces an unset logger with one named after the API.
func debugLogger(log logger.Logger) logger.Logger {
	if log.IsZero() {
		return logger.New("vulkan")
	}
	return log
}

// IsIgnoredMessage reports whether data is one of the validation layers'
// notices about their own configuration.
func IsIgnoredMessage(data *ext_debug_utils.DebugUtilsMessengerCallbackData) bool {
	if data == nil {
		return false
	}
	id := uint32(data.MessageIDNumber)
	return id == messageIDDebugUtilsEnabled || id == messageIDDebugLayersSlow
}

// FormatDebugMessage renders a messenger callback as a multi-line report
// listing the message, its labels and the objects it names.
func FormatDebugMessage(severity ext_debug_utils.DebugUtilsMessageSeverityFlags, msgType ext_debug_utils.DebugUtilsMessageTypeFlags, data *ext_debug_utils.DebugUtilsMessengerCallbackData) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s:\n", severity, msgType)
	if data == nil {
		return sb.String()
	}

	fmt.Fprintf(&sb, "\tmessageIDName   = <%s>\n", data.MessageIDName)
	fmt.Fprintf(&sb, "\tmessageIdNumber = %d\n", data.MessageIDNumber)
	fmt.Fprintf(&sb, "\tmessage         = <%s>\n", data.Message)

	if len(data.QueueLabels) > 0 {
		sb.WriteString("\tQueue Labels:\n")
		for _, label := range data.QueueLabels {
			fmt.Fprintf(&sb, "\t\tlabelName = <%s>\n", label.LabelName)
		}
	}

	if len(data.CmdBufLabels) > 0 {
		sb.WriteString("\tCommandBuffer Labels:\n")
		for _, label := range data.CmdBufLabels {
			fmt.Fprintf(&sb, "\t\tlabelName = <%s>\n", label.LabelName)
		}
	}

	if len(data.Objects) > 0 {
		sb.WriteString("\tObjects:\n")
		for i, object := range data.Objects {
			fmt.Fprintf(&sb, "\t\tObject %d\n", i)
			fmt.Fprintf(&sb, "\t\t\tobjectType   = %s\n", object.ObjectType)
			fmt.Fprintf(&sb, "\t\t\tobjectHandle = %d\n", object.ObjectHandle)
			if object.ObjectName != "" {
				fmt.Fprintf(&sb, "\t\t\tobjectName   = <%s>\n", object.ObjectName)
			}
		}
	}

	return sb.String()
}
