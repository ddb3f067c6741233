package scoring

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/raducarabat/hackcontrol/internal/global/auth"
	"github.com/raducarabat/hackcontrol/internal/global/database"
	"github.com/raducarabat/hackcontrol/internal/global/jwt"
	"github.com/raducarabat/hackcontrol/internal/global/response"
	"github.com/raducarabat/hackcontrol/tools"
	"github.com/xuri/excelize/v2"
)

// ExportRankings 导出排行榜为 xlsx，仅黑客松创建者（或管理员）
func ExportRankings(c *gin.Context) {
	caller, _ := jwt.GetUserPayload(c)
	hackathonID := tools.ParseUintParam(c, "hackathon_id")

	hackathon, authErr := auth.RequireHackathon(database.DB, caller, auth.LevelManager, hackathonID)
	if authErr != nil {
		response.Fail(c, authErr)
		return
	}

	result, rankErr := computeRankings(hackathonID)
	if rankErr != nil {
		response.Fail(c, rankErr)
		return
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Error("关闭 excel 文件失败", "error", err)
		}
	}()

	const sheet = "Leaderboard"
	index, err := f.NewSheet(sheet)
	if err != nil {
		response.Fail(c, response.ErrInternal.WithOrigin(err))
		return
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	headers := []string{"名次", "作品", "作者", "平均分", "评委数", "获奖", "前三"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			response.Fail(c, response.ErrInternal.WithOrigin(err))
			return
		}
	}

	row := 2
	for _, entry := range result.Eligible {
		values := []any{
			entry.Rank,
			entry.Participation.Title,
			entry.Participation.CreatorName,
			fmt.Sprintf("%.2f", entry.AverageScore),
			entry.TotalScores,
			boolMark(entry.IsWinner),
			boolMark(entry.IsPodium),
		}
		if err := setRow(f, sheet, row, values); err != nil {
			response.Fail(c, response.ErrInternal.WithOrigin(err))
			return
		}
		row++
	}

	// 未达标作品附在最后，不占名次
	for _, entry := range result.Ineligible {
		values := []any{
			"-",
			entry.Participation.Title,
			entry.Participation.CreatorName,
			fmt.Sprintf("%.2f", entry.AverageScore),
			entry.TotalScores,
			"", "",
		}
		if err := setRow(f, sheet, row, values); err != nil {
			response.Fail(c, response.ErrInternal.WithOrigin(err))
			return
		}
		row++
	}

	filename := fmt.Sprintf("leaderboard-%s.xlsx", hackathon.URL)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		log.Error("导出排行榜失败", "error", err, "hackathon_id", hackathonID)
		c.Status(http.StatusInternalServerError)
		return
	}

	log.Info("排行榜已导出", "hackathon_id", hackathonID, "rows", row-2)
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

func boolMark(b bool) string {
	if b {
		return "是"
	}
	return ""
}
