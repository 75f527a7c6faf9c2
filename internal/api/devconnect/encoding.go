package devconnect

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"sort"
)

// Attachment is an image to upload with a signup or profile edit.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

type payload struct {
	contentType string
	data        []byte
}

// encodePayload builds the request body for profile-carrying calls. The
// variant is selected once per call: JSON when there is no attachment,
// multipart form data otherwise. Under multipart, list-valued fields
// (skills) are serialized as a JSON string, everything else with fmt.
func encodePayload(fields map[string]interface{}, photo *Attachment) (*payload, error) {
	if photo == nil {
		data, err := json.Marshal(fields)
		if err != nil {
			return nil, fmt.Errorf("marshal fields: %w", err)
		}
		return &payload{contentType: "application/json", data: data}, nil
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	// stable field order keeps the body reproducible
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		value := fields[name]

		switch v := value.(type) {
		case []string:
			encoded, err := json.Marshal(v)
			if err != nil {
				return nil, fmt.Errorf("marshal field %s: %w", name, err)
			}
			if err := writer.WriteField(name, string(encoded)); err != nil {
				return nil, fmt.Errorf("write field %s: %w", name, err)
			}
		case string:
			if err := writer.WriteField(name, v); err != nil {
				return nil, fmt.Errorf("write field %s: %w", name, err)
			}
		default:
			if err := writer.WriteField(name, fmt.Sprintf("%v", v)); err != nil {
				return nil, fmt.Errorf("write field %s: %w", name, err)
			}
		}
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="photo"; filename=%q`, photo.Filename))
	header.Set("Content-Type", photo.ContentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("create photo part: %w", err)
	}
	if _, err := part.Write(photo.Data); err != nil {
		return nil, fmt.Errorf("write photo: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	return &payload{contentType: writer.FormDataContentType(), data: buf.Bytes()}, nil
}
