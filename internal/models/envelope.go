package models

import json "github.com/goccy/go-json"

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

const (
	MsgMissingFields  = "Invalid JSON input or missing fields"
	MsgInvalidType    = "Invalid data type"
	MsgInvalidMethod  = "Invalid request method"
	MsgInternalServer = "Internal Server Error"
)

// SaveRequest is the POST body. Type stays raw because only a JSON string
// can name a kind and any other truthy value must be reported as invalid.
type SaveRequest struct {
	Type json.RawMessage
	Data Record
}

// ParseSaveRequest decodes a whole POST body. Only the exact keys "type" and
// "data" are read; a body that is not an object yields empty fields.
func ParseSaveRequest(body []byte) (*SaveRequest, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, err
	}
	return &SaveRequest{
		Type: append(json.RawMessage(nil), fields["type"]...),
		Data: append(Record(nil), fields["data"]...),
	}, nil
}

func (r *SaveRequest) HasRequiredFields() bool {
	return Record(r.Type).Truthy() && r.Data.Truthy()
}

// Response is the JSON envelope of every API answer. Data is written
// whenever it is set, including empty arrays and objects.
type Response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

type responseNoData struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type responseData Response

func (r Response) MarshalJSON() ([]byte, error) {
	if r.Data == nil {
		return json.MarshalNoEscape(responseNoData{Status: r.Status, Message: r.Message})
	}
	return json.MarshalNoEscape(responseData(r))
}

func Success(message string, data any) *Response {
	return &Response{Status: StatusSuccess, Message: message, Data: data}
}

func Failure(message string) *Response {
	return &Response{Status: StatusError, Message: message}
}
