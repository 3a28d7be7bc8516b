package main

import (
	"fmt"
	"log"

	"gorm.io/datatypes"

	"github.com/devfolio/internal/config"
	"github.com/devfolio/internal/db"
	"github.com/devfolio/internal/service"
)

// 演示数据生成器，方便本地起一套能看的站点。
func main() {
	cfg := config.MustLoad()
	if err := db.Init(cfg.DB.Path); err != nil {
		log.Fatal("数据库初始化失败:", err)
	}

	fmt.Println("开始生成演示数据...")

	seedProfile()
	seedSkills()
	seedProjects()
	seedHomePage()

	fmt.Println("演示数据生成完成！")
}

func seedProfile() {
	svc := service.NewProfileService(db.DB)
	fullName := "张三"
	title := "全栈工程师"
	bio := "喜欢写 Go，偶尔写前端。\n\n在做一个个人作品站。"
	email := "hello@example.com"

	if _, err := svc.Save(service.ProfileInput{
		FullName: &fullName,
		Title:    &title,
		Bio:      &bio,
		Email:    &email,
		Socials:  map[string]any{"github": "https://github.com/example"},
	}); err != nil {
		log.Fatal("生成档案失败:", err)
	}
	fmt.Println("档案: 张三")
}

func seedSkills() {
	skills := []db.Skill{
		{Name: "Go", Category: "Backend", Level: 90, SortOrder: 0, Visible: true},
		{Name: "SQLite", Category: "Backend", Level: 75, SortOrder: 1, Visible: true},
		{Name: "React", Category: "Frontend", Level: 70, SortOrder: 0, Visible: true},
		{Name: "Docker", Category: "DevOps", Level: 65, SortOrder: 0, Visible: true},
	}
	for i := range skills {
		if err := db.DB.Where("name = ?", skills[i].Name).FirstOrCreate(&skills[i]).Error; err != nil {
			log.Fatal("生成技能失败:", err)
		}
	}
	fmt.Printf("技能: %d 项\n", len(skills))
}

func seedProjects() {
	projects := []db.Project{
		{
			Title:       "个人作品站",
			Description: "这个站点本身：Gin + GORM + SQLite 的内容后台。",
			Category:    "Web",
			TechStack:   datatypes.NewJSONSlice([]string{"Go", "Gin", "SQLite"}),
			Featured:    true,
			Visible:     true,
		},
		{
			Title:       "命令行小工具",
			Description: "日常用的一组 CLI 小工具。",
			Category:    "CLI",
			TechStack:   datatypes.NewJSONSlice([]string{"Go"}),
			Visible:     true,
		},
	}
	for i := range projects {
		if err := db.DB.Where("title = ?", projects[i].Title).FirstOrCreate(&projects[i]).Error; err != nil {
			log.Fatal("生成项目失败:", err)
		}
	}
	fmt.Printf("项目: %d 个\n", len(projects))
}

func seedHomePage() {
	svc := service.NewPageService(db.DB)
	order0, order1 := 0, 1

	if _, err := svc.UpsertSections("home", []service.SectionInput{
		{
			Name:      "hero",
			Type:      db.SectionTypeHero,
			Title:     "你好，我是张三",
			Subtitle:  "写代码，也写文档",
			Content:   map[string]any{"headline": "全栈工程师", "imageUrl": ""},
			SortOrder: &order0,
		},
		{
			Name:      "cta",
			Type:      db.SectionTypeCTA,
			Content:   map[string]any{"primaryButton": "联系我", "targetUrl": "/contact"},
			SortOrder: &order1,
		},
	}); err != nil {
		log.Fatal("生成首页区块失败:", err)
	}
	fmt.Println("首页: hero + cta")
}
