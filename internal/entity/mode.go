package entity

// Mode selects the analysis strategy for a submit. A single field holds
// the active mode, so mutual exclusion holds for every toggle sequence.
type Mode string

const (
	ModePlainRAG    Mode = "plain-rag"
	ModeSingleAgent Mode = "single-agent"
	ModeMultiAgent  Mode = "multi-agent"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModePlainRAG, ModeSingleAgent, ModeMultiAgent:
		return Mode(s), nil
	default:
		return "", ErrUnknownMode
	}
}

func (m Mode) Label() string {
	switch m {
	case ModeSingleAgent:
		return "Churn Agent"
	case ModeMultiAgent:
		return "Multi-Agent Pipeline"
	default:
		return "Retrieval QA"
	}
}

// RetrieverKind is the retrieval strategy used by the plain-rag mode.
// The set is closed; the backend rejects anything else.
type RetrieverKind string

const (
	RetrieverParentDocument        RetrieverKind = "parent_document"
	RetrieverMultiQuery            RetrieverKind = "multi_query"
	RetrieverReranking             RetrieverKind = "reranking"
	RetrieverNaive                 RetrieverKind = "naive"
	RetrieverContextualCompression RetrieverKind = "contextual_compression"
)

// RetrieverKinds lists every supported strategy in display order.
var RetrieverKinds = []RetrieverKind{
	RetrieverParentDocument,
	RetrieverMultiQuery,
	RetrieverReranking,
	RetrieverNaive,
	RetrieverContextualCompression,
}

func ParseRetrieverKind(s string) (RetrieverKind, error) {
	for _, k := range RetrieverKinds {
		if RetrieverKind(s) == k {
			return k, nil
		}
	}
	return "", ErrUnknownRetriever
}

func (k RetrieverKind) Label() string {
	switch k {
	case RetrieverParentDocument:
		return "Parent Document"
	case RetrieverMultiQuery:
		return "Multi-Query"
	case RetrieverReranking:
		return "Reranking"
	case RetrieverNaive:
		return "Naive"
	case RetrieverContextualCompression:
		return "Contextual Compression"
	default:
		return string(k)
	}
}

// BackendStatus reflects reachability of the analysis backend as derived
// from the last probe or request outcome.
type BackendStatus string

const (
	BackendChecking BackendStatus = "checking"
	BackendOnline   BackendStatus = "online"
	BackendOffline  BackendStatus = "offline"
)
