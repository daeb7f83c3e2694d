package sentiment

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"unicode"
)

const seqLen = 128

const (
	tokenCLS = "[CLS]"
	tokenSEP = "[SEP]"
	tokenPAD = "[PAD]"
	tokenUNK = "[UNK]"
)

// tokenizer is a WordPiece encoder over a BERT-style vocab.txt. It
// covers what headline text needs: lowercasing, punctuation splits,
// greedy longest-match subwords.
type tokenizer struct {
	vocab map[string]int64
}

func loadTokenizer(vocabPath string) (*tokenizer, error) {
	f, err := os.Open(vocabPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	vocab := make(map[string]int64)
	scanner := bufio.NewScanner(f)
	var id int64
	for scanner.Scan() {
		vocab[strings.TrimSpace(scanner.Text())] = id
		id++
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	for _, special := range []string{tokenCLS, tokenSEP, tokenPAD, tokenUNK} {
		if _, ok := vocab[special]; !ok {
			return nil, fmt.Errorf("vocab missing special token %s", special)
		}
	}

	return &tokenizer{vocab: vocab}, nil
}

// encode produces fixed-length input_ids and attention_mask slices,
// truncating long text and padding short text to seqLen.
func (t *tokenizer) encode(text string) ([]int64, []int64) {
	ids := []int64{t.vocab[tokenCLS]}

	for _, word := range splitWords(text) {
		ids = append(ids, t.wordpiece(word)...)
		if len(ids) >= seqLen-1 {
			ids = ids[:seqLen-1]
			break
		}
	}

	ids = append(ids, t.vocab[tokenSEP])

	inputIDs := make([]int64, seqLen)
	attentionMask := make([]int64, seqLen)
	pad := t.vocab[tokenPAD]

	for i := 0; i < seqLen; i++ {
		if i < len(ids) {
			inputIDs[i] = ids[i]
			attentionMask[i] = 1
		} else {
			inputIDs[i] = pad
		}
	}

	return inputIDs, attentionMask
}

// wordpiece greedily matches the longest vocab prefix, marking
// continuations with the "##" prefix BERT vocabularies use.
func (t *tokenizer) wordpiece(word string) []int64 {
	var ids []int64

	runes := []rune(word)
	start := 0
	for start < len(runes) {
		end := len(runes)
		var match string
		for end > start {
			candidate := string(runes[start:end])
			if start > 0 {
				candidate = "##" + candidate
			}
			if _, ok := t.vocab[candidate]; ok {
				match = candidate
				break
			}
			end--
		}

		if match == "" {
			return []int64{t.vocab[tokenUNK]}
		}

		ids = append(ids, t.vocab[match])
		start = end
	}

	return ids
}

// splitWords lowercases and splits on whitespace, with punctuation
// characters becoming standalone tokens.
func splitWords(text string) []string {
	var words []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
	}

	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsSpace(r):
			flush()
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			flush()
			words = append(words, string(r))
		default:
			current.WriteRune(r)
		}
	}
	flush()

	return words
}
