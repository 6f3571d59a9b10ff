// file: internals/features/assessments/attempts/dto/answer_codec.go
package dto

import (
	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

/* =========================================================
   Codec payload jsonb kolom attempt_responses
========================================================= */

func EncodeOptionIDs(ids []uuid.UUID) datatypes.JSON {
	if len(ids) == 0 {
		return nil
	}
	b, err := sonic.Marshal(ids)
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}

func DecodeOptionIDs(raw datatypes.JSON) []uuid.UUID {
	if len(raw) == 0 {
		return nil
	}
	var ids []uuid.UUID
	if err := sonic.Unmarshal(raw, &ids); err != nil {
		return nil
	}
	return ids
}

func EncodeMatchedPairs(pairs []MatchedPair) datatypes.JSON {
	if len(pairs) == 0 {
		return nil
	}
	b, err := sonic.Marshal(pairs)
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}

func DecodeMatchedPairs(raw datatypes.JSON) []MatchedPair {
	if len(raw) == 0 {
		return nil
	}
	var pairs []MatchedPair
	if err := sonic.Unmarshal(raw, &pairs); err != nil {
		return nil
	}
	return pairs
}
