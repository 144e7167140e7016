package constants

// 上传文件
const (
	MediaRootDefault = "/vol/web/media"
	MediaURLDefault  = "/static/media/"

	RecipeImageDir = "uploads/recipe" // 相对于 MediaRoot
)
