package crack

import (
	"encoding/json"
	"strings"

	"crackcrawl/internal/model"
)

// RawCharacter is one upstream record. The payload shape varies by record:
// chatType, creator, profileImage and target are usually objects but show up
// as bare strings on some records, and any field may be missing entirely.
// Keeping them as raw JSON defers the shape decision to Normalize.
type RawCharacter struct {
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	ChatType        json.RawMessage `json:"chatType"`
	Creator         json.RawMessage `json:"creator"`
	ProfileImage    json.RawMessage `json:"profileImage"`
	Target          json.RawMessage `json:"target"`
	Tags            json.RawMessage `json:"tags"`
	InitialMessages json.RawMessage `json:"initialMessages"`
}

// Normalize converts one raw record into a relational tuple. It is total:
// every missing or wrong-shaped field degrades to "" or an empty slice so
// one odd record never sinks the rest of its batch.
func Normalize(raw RawCharacter, categoryID int64) model.Character {
	return model.Character{
		Name:            raw.Name,
		CategoryID:      categoryID,
		Description:     raw.Description,
		TargetAudience:  objectField(raw.Target, "name"),
		ChatType:        objectField(raw.ChatType, "name"),
		Tags:            stringList(raw.Tags),
		ImageURL:        objectField(raw.ProfileImage, "origin"),
		InitialMessage:  firstString(raw.InitialMessages),
		CreatorNickname: objectField(raw.Creator, "nickname"),
	}
}

// objectField extracts obj[key] as a string when the field is an object.
// A present non-object value is coerced to its string representation;
// absent or null yields "".
func objectField(raw json.RawMessage, key string) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err == nil {
		return asString(obj[key])
	}

	return asString(raw)
}

func asString(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	// Numbers, booleans and the like keep their literal text.
	return strings.TrimSpace(string(raw))
}

// stringList keeps tags only when they are list-shaped.
func stringList(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return []string{}
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return []string{}
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, asString(item))
	}
	return out
}

// firstString returns the first element of a string list, or "".
func firstString(raw json.RawMessage) string {
	items := stringList(raw)
	if len(items) == 0 {
		return ""
	}
	return items[0]
}
