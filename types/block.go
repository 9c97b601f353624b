package types

import (
	"github.com/ethereum/go-ethereum/common"
)

// SealedBlock is the response of a manual seal request
type SealedBlock struct {
	Hash   common.Hash `json:"hash"`
	Number uint64      `json:"number"`
}

type Header struct {
	Number     uint64      `json:"number"`
	Hash       common.Hash `json:"hash"`
	ParentHash common.Hash `json:"parentHash"`
}

type Block struct {
	Header     Header        `json:"header"`
	Extrinsics []common.Hash `json:"extrinsics"`
}

// ExtrinsicResult is the outcome of one extrinsic included in a created block
type ExtrinsicResult struct {
	Hash       common.Hash
	Call       string
	Index      uint32
	Included   bool
	Successful bool
	Error      string
}

type BlockResult struct {
	Block   SealedBlock
	Results []*ExtrinsicResult
	Events  []*RawEvent
}

// FailedResults returns the results of extrinsics that did not succeed
func (b *BlockResult) FailedResults() []*ExtrinsicResult {
	var failed []*ExtrinsicResult
	for _, r := range b.Results {
		if !r.Successful {
			failed = append(failed, r)
		}
	}
	return failed
}
