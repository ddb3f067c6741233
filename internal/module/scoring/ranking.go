package scoring

import (
	"sort"

	"github.com/raducarabat/hackcontrol/internal/model"
)

// SubmissionScores 是排行计算的输入：一个作品和它收到的所有分值。
// 计算只关心分值本身，不关心评委身份。
type SubmissionScores struct {
	Participation model.Participation
	Scores        []int
}

// Entry 是带统计信息的作品条目
type Entry struct {
	Participation model.Participation `json:"participation"`
	AverageScore  float64             `json:"average_score"`
	TotalScores   int                 `json:"total_scores"`
}

// RankedEntry 是进入排行榜的作品条目
type RankedEntry struct {
	Entry
	Rank     int  `json:"rank"`
	IsWinner bool `json:"is_winner"`
	IsPodium bool `json:"is_podium"`
}

// RankingResult 是一次排行计算的完整输出
type RankingResult struct {
	Eligible          []RankedEntry `json:"eligible"`
	Ineligible        []Entry       `json:"ineligible"`
	MinJudgesRequired int           `json:"min_judges_required"`
}

// CalculateRankings 计算黑客松排行榜。
//
// 打分数达到 minJudgesRequired 的作品进入排行，按平均分降序，平均分相同时
// 打分数多的在前（更多独立评委的意见更有说服力）。平均分和打分数都相同的
// 作品不再细分名次，按输入顺序稳定排列。名次从 1 开始连续编号，并列也不
// 共享名次。未达标的作品永远不参与排行，只附带统计信息返回。
//
// 纯函数，不做任何 I/O。每次查询都重新计算，排行从不落库：分数随评委提交
// 随时变化，实时榜单靠重算而不是增量维护。
func CalculateRankings(submissions []SubmissionScores, minJudgesRequired int) RankingResult {
	result := RankingResult{
		Eligible:          []RankedEntry{},
		Ineligible:        []Entry{},
		MinJudgesRequired: minJudgesRequired,
	}

	var eligible []Entry
	for _, s := range submissions {
		entry := Entry{
			Participation: s.Participation,
			AverageScore:  averageScore(s.Scores),
			TotalScores:   len(s.Scores),
		}
		if entry.TotalScores >= minJudgesRequired {
			eligible = append(eligible, entry)
		} else {
			result.Ineligible = append(result.Ineligible, entry)
		}
	}

	// 稳定排序保证完全并列的作品顺序确定
	sort.SliceStable(eligible, func(i, j int) bool {
		if eligible[i].AverageScore != eligible[j].AverageScore {
			return eligible[i].AverageScore > eligible[j].AverageScore
		}
		return eligible[i].TotalScores > eligible[j].TotalScores
	})

	for i, entry := range eligible {
		result.Eligible = append(result.Eligible, RankedEntry{
			Entry:    entry,
			Rank:     i + 1,
			IsWinner: i == 0,
			IsPodium: i < 3,
		})
	}

	return result
}

func averageScore(scores []int) float64 {
	if len(scores) == 0 {
		return 0
	}
	sum := 0
	for _, s := range scores {
		sum += s
	}
	return float64(sum) / float64(len(scores))
}

// ScoringProgress 是一位评委在某黑客松的打分进度
type ScoringProgress struct {
	Completed  int `json:"completed"`
	Remaining  int `json:"remaining"`
	Percentage int `json:"percentage"`
}

// CalculateProgress 计算打分进度，百分比四舍五入为整数
func CalculateProgress(totalSubmissions, scoredSubmissions int) ScoringProgress {
	remaining := totalSubmissions - scoredSubmissions
	if remaining < 0 {
		remaining = 0
	}
	percentage := 0
	if totalSubmissions > 0 {
		percentage = int(float64(scoredSubmissions)/float64(totalSubmissions)*100 + 0.5)
	}
	return ScoringProgress{
		Completed:  scoredSubmissions,
		Remaining:  remaining,
		Percentage: percentage,
	}
}
