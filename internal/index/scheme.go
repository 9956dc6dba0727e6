package index

var (
	bPosts        = []byte("posts")         // slug -> Entry json
	bIdxOrder     = []byte("idx_order")     // seq(8) -> slug
	bIdxPublished = []byte("idx_published") // invTime(8) + seq(8) -> slug
	bBuild        = []byte("build")         // build info keys below

	kBuiltAt = []byte("built_at")
	kCount   = []byte("count")
)
