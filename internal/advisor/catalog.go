package advisor

import (
	"github.com/shopspring/decimal"

	"advisor-backend/internal/market"
)

// The catalog is author-curated static data: the instrument universe,
// the per-condition stock picks, the six strategy templates, and the
// knowledge quiz. Nothing here is mutated at runtime.

type etf struct {
	Code        string
	Name        string
	Description string
}

var etfDatabase = map[string]etf{
	"沪深300ETF":  {Code: "510300", Name: "华泰柏瑞沪深300ETF", Description: "跟踪沪深300指数"},
	"中证500ETF":  {Code: "510500", Name: "南方中证500ETF", Description: "跟踪中证500指数"},
	"创业板ETF":    {Code: "159915", Name: "易方达创业板ETF", Description: "跟踪创业板指数"},
	"科创50ETF":   {Code: "588000", Name: "华夏科创50ETF", Description: "跟踪科创50指数"},
	"证券ETF":     {Code: "512880", Name: "国泰证券ETF", Description: "跟踪证券公司指数"},
	"半导体ETF":    {Code: "512480", Name: "国联安半导体ETF", Description: "跟踪半导体产业指数"},
	"机器人ETF":    {Code: "159770", Name: "景顺长城机器人ETF", Description: "跟踪机器人产业"},
	"人工智能ETF":   {Code: "515070", Name: "华夏人工智能ETF", Description: "跟踪AI主题"},
	"创新药ETF":    {Code: "159992", Name: "银华创新药ETF", Description: "跟踪创新药产业指数"},
	"红利ETF":     {Code: "510880", Name: "华泰柏瑞红利ETF", Description: "高股息策略"},
	"低波红利ETF":   {Code: "563280", Name: "华泰柏瑞低波动ETF", Description: "低波动策略"},
	"价值ETF":     {Code: "159510", Name: "广发价值ETF", Description: "价值投资策略"},
	"国债ETF":     {Code: "511010", Name: "国泰国债ETF", Description: "跟踪国债指数"},
	"黄金ETF":     {Code: "518880", Name: "华安黄金ETF", Description: "跟踪黄金价格"},
	"可转债ETF":    {Code: "511380", Name: "平安可转债ETF", Description: "可转债指数"},
	"中证医药ETF":   {Code: "512010", Name: "国泰医药ETF", Description: "跟踪医药卫生指数"},
	"军工ETF":     {Code: "512660", Name: "国泰军工ETF", Description: "跟踪中证军工指数"},
}

var (
	bullBrokerPicks = []StockPick{
		{Name: "中信证券", Code: "600030", Reason: "券商龙头，牛市业绩弹性最大", Sector: "券商"},
		{Name: "东方财富", Code: "300059", Reason: "互联网券商，成长性强", Sector: "券商"},
		{Name: "中金公司", Code: "601995", Reason: "高端券商，机构业务强", Sector: "券商"},
	}
	bullTechPicks = []StockPick{
		{Name: "宁德时代", Code: "300750", Reason: "新能源电池龙头", Sector: "新能源"},
		{Name: "比亚迪", Code: "002594", Reason: "新能源汽车龙头", Sector: "新能源车"},
		{Name: "立讯精密", Code: "002475", Reason: "消费电子龙头", Sector: "电子"},
	}
	bullConsumerPicks = []StockPick{
		{Name: "贵州茅台", Code: "600519", Reason: "白酒龙头", Sector: "消费"},
		{Name: "美的集团", Code: "000333", Reason: "家电龙头", Sector: "家电"},
		{Name: "五粮液", Code: "000858", Reason: "高端白酒", Sector: "消费"},
	}
	choppyDividendPicks = []StockPick{
		{Name: "工商银行", Code: "601398", Reason: "银行龙头，股息率约5%", Sector: "银行"},
		{Name: "建设银行", Code: "601939", Reason: "国有大行，分红稳定", Sector: "银行"},
		{Name: "中国神华", Code: "601088", Reason: "煤炭龙头", Sector: "煤炭"},
	}
	choppyDefensivePicks = []StockPick{
		{Name: "长江电力", Code: "600900", Reason: "水电龙头", Sector: "电力"},
		{Name: "伊利股份", Code: "600887", Reason: "乳制品龙头", Sector: "食品饮料"},
		{Name: "海天味业", Code: "603288", Reason: "调味品龙头", Sector: "食品饮料"},
	}
	bearOversoldPicks = []StockPick{
		{Name: "招商银行", Code: "600036", Reason: "零售银行龙头", Sector: "银行"},
		{Name: "宁波银行", Code: "002142", Reason: "城商行标杆", Sector: "银行"},
		{Name: "中国平安", Code: "601318", Reason: "综合金融", Sector: "保险"},
	}
)

// stockPicksBySector keys the pick lists by market condition and sector
// theme, mirroring the full curated universe.
var stockPicksBySector = map[market.Condition]map[string][]StockPick{
	market.Bull: {
		"券商": bullBrokerPicks,
		"科技": bullTechPicks,
		"消费": bullConsumerPicks,
	},
	market.Choppy: {
		"高股息": choppyDividendPicks,
		"防御":  choppyDefensivePicks,
	},
	market.Bear: {
		"超跌": bearOversoldPicks,
	},
}

type allocationKind int

const (
	allocLump allocationKind = iota
	allocMonthly
	allocRemainder
)

// allocation is one instrument line of a strategy template. Fractions
// apply to the fund budget; monthly lines are additionally capped.
type allocation struct {
	ETF      string
	Reason   string
	Risk     string
	Kind     allocationKind
	Fraction decimal.Decimal
	Cap      decimal.Decimal
}

type strategyTemplate struct {
	Name        string
	Allocations []allocation
	Picks       []StockPick
	Tactical    string
}

func pct(n int64) decimal.Decimal {
	return decimal.New(n, -2)
}

var strategyTemplates = map[RiskStyle]map[market.Condition]strategyTemplate{
	Aggressive: {
		market.Bull: {
			Name: "无限进攻·牛市策略：全仓高弹性进攻型标的",
			Allocations: []allocation{
				{ETF: "证券ETF", Reason: "券商牛市先锋，弹性最大，把握市场上涨红利", Risk: "高", Kind: allocLump, Fraction: pct(25)},
				{ETF: "半导体ETF", Reason: "科技周期向上，高弹性进攻标的", Risk: "高", Kind: allocLump, Fraction: pct(20)},
				{ETF: "人工智能ETF", Reason: "AI主题长期成长性强", Risk: "高", Kind: allocLump, Fraction: pct(20)},
				{ETF: "创新药ETF", Reason: "医药创新高成长，牛市弹性大", Risk: "高", Kind: allocLump, Fraction: pct(15)},
				{ETF: "创业板ETF", Reason: "高弹性成长指数，牛市超额收益最强", Risk: "高", Kind: allocLump, Fraction: pct(10)},
				{ETF: "科创50ETF", Reason: "硬科技龙头，长期成长确定", Risk: "高", Kind: allocRemainder},
			},
			Picks:    concatPicks(bullTechPicks, bullBrokerPicks),
			Tactical: "牛市全面进攻，配置高弹性ETF如证券ETF(512880)、半导体ETF(512480)、人工智能ETF(515070)等。注意设置止盈线，建议达到30%收益时分批止盈。",
		},
		market.Choppy: {
			Name: "无限进攻·震荡市策略：70%进攻 + 30%红利安全垫",
			Allocations: []allocation{
				{ETF: "创业板ETF", Reason: "成长板块，波段操作机会多", Risk: "高", Kind: allocLump, Fraction: pct(30)},
				{ETF: "半导体ETF", Reason: "科技主题弹性大，震荡市有波段机会", Risk: "高", Kind: allocLump, Fraction: pct(25)},
				{ETF: "人工智能ETF", Reason: "AI主题长期成长逻辑不变", Risk: "高", Kind: allocLump, Fraction: pct(15)},
				{ETF: "红利ETF", Reason: "高股息策略，作为安全垫降低波动", Risk: "中低", Kind: allocLump, Fraction: pct(30)},
			},
			Picks:    bullTechPicks[:2],
			Tactical: "震荡市保持进攻姿态，70%配置高弹性标的，30%配置红利ETF作为安全垫。可以利用波动进行波段操作，低吸高抛。",
		},
		market.Bear: {
			Name: "无限进攻·熊市策略：40%进攻抄底 + 60%黄金国债防守",
			Allocations: []allocation{
				{ETF: "创业板ETF", Reason: "超跌成长板块，熊市抄底机会", Risk: "高", Kind: allocMonthly, Fraction: pct(15), Cap: decimal.NewFromInt(1000)},
				{ETF: "科创50ETF", Reason: "硬科技超跌，长期布局机会", Risk: "高", Kind: allocMonthly, Fraction: pct(15), Cap: decimal.NewFromInt(1000)},
				{ETF: "半导体ETF", Reason: "科技超跌，弹性大适合抄底", Risk: "高", Kind: allocMonthly, Fraction: pct(10), Cap: decimal.NewFromInt(800)},
				{ETF: "黄金ETF", Reason: "黄金作为避险资产，熊市保值", Risk: "中", Kind: allocLump, Fraction: pct(30)},
				{ETF: "国债ETF", Reason: "国债提供安全收益，降低组合风险", Risk: "低", Kind: allocLump, Fraction: pct(30)},
			},
			Picks:    bearOversoldPicks,
			Tactical: "熊市中保持40%进攻仓位抄底超跌成长板块，60%配置黄金和国债防守。采用定投方式分批建仓，等待市场反弹。不要一次性抄底，要预留现金。",
		},
	},
	Defensive: {
		market.Bull: {
			Name: "防守反击·牛市策略：50%低波红利防守 + 50%证券科技进攻",
			Allocations: []allocation{
				{ETF: "低波红利ETF", Reason: "低波动策略，牛市中稳健防守", Risk: "低", Kind: allocLump, Fraction: pct(50)},
				{ETF: "证券ETF", Reason: "券商牛市先锋，进攻端配置", Risk: "高", Kind: allocLump, Fraction: pct(25)},
				{ETF: "人工智能ETF", Reason: "AI主题成长性强，进攻配置", Risk: "高", Kind: allocLump, Fraction: pct(25)},
			},
			Picks:    bullBrokerPicks[:2],
			Tactical: "牛市采用防守反击策略，50%低波红利ETF(563280)防守，50%证券ETF(512880)和AI ETF(515070)进攻。攻守兼备，风险可控。",
		},
		market.Choppy: {
			Name: "防守反击·震荡市策略：50%低波红利防守 + 50%价值消费进攻",
			Allocations: []allocation{
				{ETF: "低波红利ETF", Reason: "低波动策略，震荡市防守核心", Risk: "低", Kind: allocLump, Fraction: pct(50)},
				{ETF: "价值ETF", Reason: "价值策略在震荡市中表现稳健", Risk: "中", Kind: allocLump, Fraction: pct(30)},
				{ETF: "中证医药ETF", Reason: "医药消费长期成长，震荡市防守配置", Risk: "中", Kind: allocLump, Fraction: pct(20)},
			},
			Picks:    concatPicks(choppyDividendPicks, choppyDefensivePicks),
			Tactical: "震荡市采用防守反击，50%低波红利ETF(563280)防守，50%价值ETF(159510)和医药ETF(512010)进攻。获取股息收益的同时等待市场机会。",
		},
		market.Bear: {
			Name: "防守反击·熊市策略：50%低波红利防守 + 50%沪深300定投",
			Allocations: []allocation{
				{ETF: "低波红利ETF", Reason: "低波动策略，熊市防守核心", Risk: "低", Kind: allocLump, Fraction: pct(50)},
				{ETF: "沪深300ETF", Reason: "核心蓝筹估值低，熊市定投布局", Risk: "中", Kind: allocMonthly, Fraction: pct(25), Cap: decimal.NewFromInt(1500)},
				{ETF: "红利ETF", Reason: "高股息策略提供持续现金流", Risk: "中低", Kind: allocMonthly, Fraction: pct(25), Cap: decimal.NewFromInt(1500)},
			},
			Picks:    choppyDividendPicks,
			Tactical: "熊市采用防守反击策略，50%低波红利ETF(563280)防守获取股息，50%沪深300ETF(510300)定投布局核心资产。攻守兼备，等待市场复苏。",
		},
	},
}

func concatPicks(lists ...[]StockPick) []StockPick {
	var out []StockPick
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

type knowledgeAdvice struct {
	Assessment string
	Warning    string
}

// Knowledge level only shapes the feedback text and stock-pick
// visibility; it never changes the strategy branch.
var knowledgeAdvisories = map[KnowledgeLevel]knowledgeAdvice{
	Novice: {
		Assessment: "检测到您对证券市场了解较少，建议从基础指数基金开始，逐步积累经验",
		Warning:    "新手投资者，建议先从低风险产品开始学习",
	},
	Beginner: {
		Assessment: "您对证券市场有一定了解，可以尝试更多样化的投资产品",
		Warning:    "入门水平投资者，建议在控制风险的前提下逐步拓展",
	},
	Intermediate: {
		Assessment: "您对证券市场有较好理解，可以适当配置弹性产品",
		Warning:    "进阶投资者，可根据市场情况灵活调整配置",
	},
	Professional: {
		Assessment: "您对证券市场有深入了解，可以进行更积极的投资操作",
		Warning:    "专业投资者，可根据市场机会进行战术性配置",
	},
}

type quizQuestion struct {
	ID       int
	Question string
	Options  []string
	Correct  int
}

var quizQuestions = []quizQuestion{
	{
		ID:       1,
		Question: "在足球转会市场中，'阵型'（如4-3-3）最主要的作用是什么？",
		Options: []string{
			"决定球队在球场上的战术体系和球员站位",
			"决定球员的球衣号码分配",
			"决定教练的薪资水平",
			"决定球场的草坪维护方式",
		},
		Correct: 0,
	},
	{
		ID:       2,
		Question: "以下哪种转会策略风险最高？",
		Options: []string{
			"购买成熟球星，支付高额转会费",
			"培养青训球员，成本低",
			"租借球员，灵活性强",
			"免费转会老将，经验丰富",
		},
		Correct: 0,
	},
	{
		ID:       3,
		Question: "球员身价评估中，'年龄'因素通常如何影响身价？",
		Options: []string{
			"年轻球员潜力溢价，老将身价随年龄下降",
			"年龄越大身价越高",
			"年龄与身价无关",
			"只有30岁球员身价最高",
		},
		Correct: 0,
	},
	{
		ID:       4,
		Question: "五大联赛（英超、西甲、德甲、意甲、法甲）的比赛时间通常是？",
		Options: []string{
			"周末或周中晚间，具体时间因联赛而异",
			"只能在周六下午3点",
			"每天固定时间踢比赛",
			"只在夏季进行比赛",
		},
		Correct: 0,
	},
	{
		ID:       5,
		Question: "什么是定投（定期定额投资）？",
		Options: []string{
			"一次性投入全部资金",
			"定期定额买入同一投资产品",
			"只在市场下跌时买入",
			"只投资指数基金",
		},
		Correct: 1,
	},
	{
		ID:       6,
		Question: "以下哪种情况应该立即止损？",
		Options: []string{
			"投资亏损达到预设止损线",
			"市场小幅波动",
			"长期价值投资标的",
			"看好后市",
		},
		Correct: 0,
	},
	{
		ID:       7,
		Question: "A股市场的涨跌停限制是？",
		Options: []string{
			"±5%",
			"±10%",
			"±20%",
			"没有涨跌停限制",
		},
		Correct: 1,
	},
	{
		ID:       8,
		Question: "什么是分红收益率？",
		Options: []string{
			"年度分红总额除以投资本金",
			"股票价格上涨百分比",
			"基金净值增长率",
			"交易手续费率",
		},
		Correct: 0,
	},
}

// Questions returns the quiz as served to clients, without correct flags.
func Questions() []Question {
	out := make([]Question, len(quizQuestions))
	for i, q := range quizQuestions {
		out[i] = Question{
			ID:       q.ID,
			Question: q.Question,
			Options:  append([]string(nil), q.Options...),
		}
	}
	return out
}
