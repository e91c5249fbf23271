package catalog

import (
	"strings"

	"github.com/yungbote/admitpath-backend/internal/domain/progression"
)

type phaseText struct {
	Name            string
	Subtitle        string
	Description     string
	UnlockCondition string
}

type requirementText struct {
	Label       string
	Description string
}

func phaseTextFor(loc string, p progression.Phase) phaseText {
	if byPhase, ok := phaseTexts[loc]; ok {
		if pt, ok := byPhase[p]; ok {
			return pt
		}
	}
	return phaseTexts[DefaultLocale][p]
}

func requirementTextFor(loc, key string) requirementText {
	if byKey, ok := requirementTexts[loc]; ok {
		if rt, ok := byKey[key]; ok {
			return rt
		}
	}
	return requirementTexts[DefaultLocale][key]
}

// Field labels stay English; the web client localizes generic form labels on
// its side.
func fieldLabel(name string) string {
	parts := strings.Split(name, "_")
	for i, p := range parts {
		if p == "url" {
			parts[i] = "URL"
			continue
		}
		if p != "" {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}

var phaseTexts = map[string]map[progression.Phase]phaseText{
	"en": {
		progression.PhaseFoundation: {
			Name:            "Foundation",
			Subtitle:        "Build your academic base",
			Description:     "Diagnostic scores, a project topic and an honest self-analysis. Everything later stands on this.",
			UnlockCondition: "Available from the start.",
		},
		progression.PhaseDifferentiation: {
			Name:            "Differentiation",
			Subtitle:        "Become distinguishable",
			Description:     "Launch a project, take a leadership role, enter an olympiad, certify a skill.",
			UnlockCondition: "Unlocks when every Foundation requirement is approved.",
		},
		progression.PhaseProof: {
			Name:            "Proof",
			Subtitle:        "Show measurable results",
			Description:     "Impact metrics, recommendations, competition placements and a written case study.",
			UnlockCondition: "Unlocks when every Differentiation requirement is approved.",
		},
		progression.PhaseLeverage: {
			Name:            "Leverage",
			Subtitle:        "Convert work into offers",
			Description:     "Final essay, application list, scholarship longlist and interview practice.",
			UnlockCondition: "Unlocks when every Proof requirement is approved.",
		},
	},
	"ru": {
		progression.PhaseFoundation: {
			Name:            "Фундамент",
			Subtitle:        "Построй академическую базу",
			Description:     "Диагностические баллы, тема проекта и честный самоанализ. Всё дальнейшее стоит на этом.",
			UnlockCondition: "Доступен с самого начала.",
		},
		progression.PhaseDifferentiation: {
			Name:            "Дифференциация",
			Subtitle:        "Стань заметным",
			Description:     "Запусти проект, возьми лидерскую роль, участвуй в олимпиаде, подтверди навык.",
			UnlockCondition: "Откроется, когда одобрены все требования Фундамента.",
		},
		progression.PhaseProof: {
			Name:            "Доказательства",
			Subtitle:        "Покажи измеримые результаты",
			Description:     "Метрики проекта, рекомендации, результаты конкурсов и кейс-стади.",
			UnlockCondition: "Откроется, когда одобрены все требования Дифференциации.",
		},
		progression.PhaseLeverage: {
			Name:            "Рычаг",
			Subtitle:        "Преврати работу в офферы",
			Description:     "Финальное эссе, список вузов, лонглист стипендий и тренировка интервью.",
			UnlockCondition: "Откроется, когда одобрены все требования Доказательств.",
		},
	},
	"kk": {
		progression.PhaseFoundation: {
			Name:            "Іргетас",
			Subtitle:        "Академиялық негізіңді қала",
			Description:     "Диагностикалық балдар, жоба тақырыбы және адал өзін-өзі талдау.",
			UnlockCondition: "Басынан бастап қолжетімді.",
		},
		progression.PhaseDifferentiation: {
			Name:            "Ерекшелену",
			Subtitle:        "Көзге түс",
			Description:     "Жоба бастап, көшбасшылық рөл алып, олимпиадаға қатысып, дағдыңды растайсың.",
			UnlockCondition: "Іргетастың барлық талаптары мақұлданғанда ашылады.",
		},
		progression.PhaseProof: {
			Name:            "Дәлел",
			Subtitle:        "Өлшенетін нәтиже көрсет",
			Description:     "Жоба метрикалары, ұсыным хаттар, байқау нәтижелері және кейс-стади.",
			UnlockCondition: "Ерекшеленудің барлық талаптары мақұлданғанда ашылады.",
		},
		progression.PhaseLeverage: {
			Name:            "Тетік",
			Subtitle:        "Еңбекті оффер қыл",
			Description:     "Қорытынды эссе, университеттер тізімі, стипендиялар лонглисті және сұхбат жаттығуы.",
			UnlockCondition: "Дәлелдің барлық талаптары мақұлданғанда ашылады.",
		},
	},
}

var requirementTexts = map[string]map[string]requirementText{
	"en": {
		KeySATDiagnostic:    {Label: "SAT diagnostic 1350+", Description: "Take a full-length SAT practice test and score at least 1350."},
		KeyIELTSMock:        {Label: "IELTS mock 6.5+", Description: "Complete an IELTS mock exam with an overall band of 6.5 or higher."},
		KeyTOEFLMock:        {Label: "TOEFL mock 90+", Description: "Complete a TOEFL practice test with a total of 90 or higher."},
		KeyENTMock:          {Label: "ENT mock 120+", Description: "Complete an ENT practice test with a total of 120 or higher."},
		KeyPortfolioDraft:   {Label: "Portfolio draft", Description: "Assemble a first draft of your academic portfolio."},
		KeyMotivationLetter: {Label: "Motivation letter", Description: "Write a motivation letter draft for your target programme."},
		KeyProjectTopic:     {Label: "Project topic", Description: "Choose and defend the topic of your personal project."},
		KeySelfAnalysis:     {Label: "Self-analysis", Description: "List your genuine strengths and the gaps you need to close."},
		KeyStudyPlan:        {Label: "Study plan", Description: "Lay out a weekly study plan covering your exam targets."},

		KeyProjectLaunch:      {Label: "Project launch", Description: "Publish your project and describe what it does."},
		KeyLeadershipRole:     {Label: "Leadership role", Description: "Take a named leadership role in a club, team or initiative."},
		KeyOlympiadEntry:      {Label: "Olympiad entry", Description: "Register and compete in a subject olympiad."},
		KeySkillCertification: {Label: "Skill certification", Description: "Earn a verifiable certificate for a relevant skill."},

		KeyProjectImpact:        {Label: "Project impact", Description: "Show a measurable outcome of your project with evidence."},
		KeyRecommendationLetter: {Label: "Recommendation letter", Description: "Obtain a recommendation letter from a mentor or teacher."},
		KeyCompetitionResult:    {Label: "Competition result", Description: "Document your placement in a competition or olympiad."},
		KeyCaseStudy:            {Label: "Case study", Description: "Write up one piece of work as a structured case study."},

		KeyFinalEssay:          {Label: "Final essay", Description: "Finish the personal essay you will actually submit."},
		KeyApplicationList:     {Label: "Application list", Description: "Fix the final list of universities you are applying to."},
		KeyScholarshipLonglist: {Label: "Scholarship longlist", Description: "Collect every scholarship you are eligible for."},
		KeyMockInterview:       {Label: "Mock interview", Description: "Record a mock admission interview and reflect on it."},
	},
	"ru": {
		KeySATDiagnostic:    {Label: "SAT диагностика 1350+", Description: "Пройди полный пробный SAT и набери не меньше 1350."},
		KeyIELTSMock:        {Label: "IELTS пробный 6.5+", Description: "Пройди пробный IELTS с общим баллом не ниже 6.5."},
		KeyTOEFLMock:        {Label: "TOEFL пробный 90+", Description: "Пройди пробный TOEFL с результатом не ниже 90."},
		KeyENTMock:          {Label: "ЕНТ пробный 120+", Description: "Пройди пробное ЕНТ с результатом не ниже 120."},
		KeyPortfolioDraft:   {Label: "Черновик портфолио", Description: "Собери первый черновик академического портфолио."},
		KeyMotivationLetter: {Label: "Мотивационное письмо", Description: "Напиши черновик мотивационного письма для целевой программы."},
		KeyProjectTopic:     {Label: "Тема проекта", Description: "Выбери и обоснуй тему личного проекта."},
		KeySelfAnalysis:     {Label: "Самоанализ", Description: "Перечисли настоящие сильные стороны и пробелы, которые надо закрыть."},
		KeyStudyPlan:        {Label: "План подготовки", Description: "Составь недельный план подготовки к целевым экзаменам."},

		KeyProjectLaunch:      {Label: "Запуск проекта", Description: "Опубликуй проект и опиши, что он делает."},
		KeyLeadershipRole:     {Label: "Лидерская роль", Description: "Возьми именованную лидерскую роль в клубе, команде или инициативе."},
		KeyOlympiadEntry:      {Label: "Участие в олимпиаде", Description: "Зарегистрируйся и выступи в предметной олимпиаде."},
		KeySkillCertification: {Label: "Сертификация навыка", Description: "Получи проверяемый сертификат по релевантному навыку."},

		KeyProjectImpact:        {Label: "Результат проекта", Description: "Покажи измеримый результат проекта с доказательствами."},
		KeyRecommendationLetter: {Label: "Рекомендательное письмо", Description: "Получи рекомендательное письмо от ментора или учителя."},
		KeyCompetitionResult:    {Label: "Результат конкурса", Description: "Задокументируй своё место в конкурсе или олимпиаде."},
		KeyCaseStudy:            {Label: "Кейс-стади", Description: "Оформи одну работу как структурированное кейс-стади."},

		KeyFinalEssay:          {Label: "Финальное эссе", Description: "Закончи эссе, которое реально отправишь."},
		KeyApplicationList:     {Label: "Список вузов", Description: "Зафиксируй финальный список университетов для подачи."},
		KeyScholarshipLonglist: {Label: "Лонглист стипендий", Description: "Собери все стипендии, на которые ты проходишь."},
		KeyMockInterview:       {Label: "Пробное интервью", Description: "Запиши пробное интервью и разбери его."},
	},
	"kk": {
		KeySATDiagnostic:    {Label: "SAT диагностика 1350+", Description: "Толық сынама SAT тапсырып, кемінде 1350 жина."},
		KeyIELTSMock:        {Label: "IELTS сынама 6.5+", Description: "Жалпы балы 6.5-тен кем емес сынама IELTS тапсыр."},
		KeyTOEFLMock:        {Label: "TOEFL сынама 90+", Description: "Нәтижесі 90-нан кем емес сынама TOEFL тапсыр."},
		KeyENTMock:          {Label: "ҰБТ сынама 120+", Description: "Нәтижесі 120-дан кем емес сынама ҰБТ тапсыр."},
		KeyPortfolioDraft:   {Label: "Портфолио жобасы", Description: "Академиялық портфолионың алғашқы нұсқасын жина."},
		KeyMotivationLetter: {Label: "Мотивациялық хат", Description: "Мақсатты бағдарлама үшін мотивациялық хаттың жобасын жаз."},
		KeyProjectTopic:     {Label: "Жоба тақырыбы", Description: "Жеке жобаңның тақырыбын таңдап, негізде."},
		KeySelfAnalysis:     {Label: "Өзін-өзі талдау", Description: "Шын мықты жақтарыңды және жабу керек олқылықтарды тізімде."},
		KeyStudyPlan:        {Label: "Дайындық жоспары", Description: "Мақсатты емтихандарға апталық дайындық жоспарын құр."},

		KeyProjectLaunch:      {Label: "Жобаны іске қосу", Description: "Жобаңды жариялап, не істейтінін сипатта."},
		KeyLeadershipRole:     {Label: "Көшбасшылық рөл", Description: "Клубта, командада немесе бастамада аталған көшбасшылық рөл ал."},
		KeyOlympiadEntry:      {Label: "Олимпиадаға қатысу", Description: "Пәндік олимпиадаға тіркеліп, қатыс."},
		KeySkillCertification: {Label: "Дағды сертификаты", Description: "Релевантты дағды бойынша тексерілетін сертификат ал."},

		KeyProjectImpact:        {Label: "Жоба нәтижесі", Description: "Жобаңның өлшенетін нәтижесін дәлелмен көрсет."},
		KeyRecommendationLetter: {Label: "Ұсыным хат", Description: "Ментордан немесе мұғалімнен ұсыным хат ал."},
		KeyCompetitionResult:    {Label: "Байқау нәтижесі", Description: "Байқаудағы немесе олимпиададағы орныңды құжатта."},
		KeyCaseStudy:            {Label: "Кейс-стади", Description: "Бір жұмысыңды құрылымды кейс-стади етіп рәсімде."},

		KeyFinalEssay:          {Label: "Қорытынды эссе", Description: "Шынымен жіберетін эссеңді аяқта."},
		KeyApplicationList:     {Label: "Университеттер тізімі", Description: "Құжат тапсыратын университеттердің соңғы тізімін бекіт."},
		KeyScholarshipLonglist: {Label: "Стипендиялар лонглисті", Description: "Өзің өте алатын барлық стипендияны жина."},
		KeyMockInterview:       {Label: "Сынама сұхбат", Description: "Сынама қабылдау сұхбатын жазып алып, талда."},
	},
}
