package session

// User-facing text. The product ships in Chinese.
const (
	DefaultTitle   = "新笔记"
	DefaultContent = "开始记录你的想法..."

	msgLoadFailed    = "加载笔记失败"
	msgCreated       = "新笔记已创建"
	msgCreateFailed  = "创建笔记失败"
	msgSaved         = "笔记已保存"
	msgSaveFailed    = "保存笔记失败"
	msgEmptyNote     = "标题和内容不能为空"
	msgDeleted       = "笔记已删除"
	msgDeleteFailed  = "删除笔记失败"
	PromptDiscard    = "有未保存的更改，是否继续？"
	PromptDelete     = "确定要删除这条笔记吗？此操作无法撤销。"
	PromptLeave      = "有未保存的更改，确定要退出吗？"
	EmptyListTitle   = "暂无笔记"
	EmptyListHint    = "按 ctrl+n 新建笔记"
	statusUnsaved    = "✏️ 有未保存的更改"
	statusSaved      = "✅ 已保存"
	justNow          = "刚刚"
	metaLineTemplate = "创建于 %s | 更新于 %s"
)
